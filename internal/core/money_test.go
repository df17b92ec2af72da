package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "12", 1200, false},
		{"two decimals", "12.34", 1234, false},
		{"one decimal", "12.5", 1250, false},
		{"comma separator", "12,34", 1234, false},
		{"rounds half up", "1.005", 101, false},
		{"rounds down", "1.004", 100, false},
		{"leading dot", ".50", 50, false},
		{"trailing dot", "12.", 1200, false},
		{"whitespace", " 12.34 ", 1234, false},
		{"large amount", "1234567.89", 123456789, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"zero decimal", "0.00", 0, true},
		{"negative", "-5", 0, true},
		{"plus sign", "+5", 0, true},
		{"letters", "abc", 0, true},
		{"mixed", "12a.34", 0, true},
		{"double dot", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToCents(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1050}
	b := Money{Cents: 250}

	if got := a.Add(b); got.Cents != 1300 {
		t.Errorf("Add = %d, want 1300", got.Cents)
	}
	if got := a.Sub(b); got.Cents != 800 {
		t.Errorf("Sub = %d, want 800", got.Cents)
	}
	if got := b.Sub(a); got.Cents != -800 {
		t.Errorf("Sub = %d, want -800", got.Cents)
	}
}

func TestMoneyDecimal(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1234, "12.34"},
		{-5, "-0.05"},
		{-1234, "-12.34"},
		{100000, "1000.00"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).Decimal(); got != tt.want {
			t.Errorf("Decimal(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1234, "₹12.34"},
		{123456, "₹1,234.56"},
		{123456789, "₹1,234,567.89"},
		{-123456, "-₹1,234.56"},
		{50, "₹0.50"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).Format(); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 1250})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "12.50" {
		t.Errorf("marshal = %s, want 12.50", b)
	}
}
