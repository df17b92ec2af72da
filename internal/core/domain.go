package core

import (
	"errors"
	"sort"
	"strings"
	"time"
)

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

const (
	MaxDescriptionLen = 200
	MaxRemarksLen     = 500
)

type (
	// TransactionType distinguishes income (credit) from expense (debit).
	TransactionType string

	// Date is a calendar date with day precision, normalized to UTC midnight.
	Date struct {
		time.Time
	}

	// Transaction is one recorded money movement.
	Transaction struct {
		ID          int64
		Amount      Money
		Description string
		Category    string
		Type        TransactionType
		PaymentMode string
		Remarks     string
		Date        Date
		// Version is store-managed and bumps on every update; the export
		// worker uses it to tell revisions apart.
		Version   int64
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Goal is the single active savings target. At most one goal exists at a
	// time; creating a new one replaces all prior goals at the store boundary.
	Goal struct {
		ID         int64
		BankAmount Money
		StartDate  Date
		CreatedAt  time.Time
		UpdatedAt  time.Time
	}
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidAmount = errors.New("invalid amount")
)

// FieldErrors maps field names to validation messages. It collects every
// invalid field so callers can surface them all in one response.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(f))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (t TransactionType) Valid() bool {
	return t == Credit || t == Debit
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// AddDays returns the date shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate reports every invalid field as a FieldErrors value. A nil return
// means the transaction is safe to persist.
func (t Transaction) Validate() error {
	errs := FieldErrors{}
	if t.Amount.Cents <= 0 {
		errs["amount"] = "must be a positive number"
	}
	if strings.TrimSpace(t.Description) == "" {
		errs["description"] = "is required"
	} else if len(t.Description) > MaxDescriptionLen {
		errs["description"] = "too long (max 200 characters)"
	}
	if strings.TrimSpace(t.Category) == "" {
		errs["category"] = "is required"
	}
	if !t.Type.Valid() {
		errs["type"] = "must be credit or debit"
	}
	if strings.TrimSpace(t.PaymentMode) == "" {
		errs["paymentMode"] = "is required"
	}
	if len(t.Remarks) > MaxRemarksLen {
		errs["remarks"] = "too long (max 500 characters)"
	}
	if t.Date.IsZero() {
		errs["date"] = "is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (g Goal) Validate() error {
	errs := FieldErrors{}
	if g.BankAmount.Cents <= 0 {
		errs["bankAmount"] = "must be a positive number"
	}
	if g.StartDate.IsZero() {
		errs["startDate"] = "is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
