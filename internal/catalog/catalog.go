// Package catalog holds the fixed category and payment-mode catalogs.
//
// The catalogs are static, read-only at runtime and referenced from
// transactions by id. References are not enforced: lookups are total functions
// that return a designated fallback entry instead of a miss, so callers never
// null-check.
package catalog

// Category describes one expense or income category.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// PaymentMode describes one payment channel.
type PaymentMode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ExpenseCategories is the catalog for debit transactions, in declaration
// order. The trailing "other" entry doubles as the lookup fallback.
var ExpenseCategories = []Category{
	{ID: "food", Label: "Food & Dining", Color: "#FF6B6B", Icon: "🍽️"},
	{ID: "transportation", Label: "Transportation", Color: "#4ECDC4", Icon: "🚗"},
	{ID: "shopping", Label: "Shopping", Color: "#45B7D1", Icon: "🛍️"},
	{ID: "entertainment", Label: "Entertainment", Color: "#96CEB4", Icon: "🎬"},
	{ID: "bills", Label: "Bills & Utilities", Color: "#FECA57", Icon: "⚡"},
	{ID: "healthcare", Label: "Healthcare", Color: "#FF9FF3", Icon: "🏥"},
	{ID: "travel", Label: "Travel", Color: "#5F27CD", Icon: "✈️"},
	{ID: "groceries", Label: "Groceries", Color: "#00D2D3", Icon: "🥕"},
	{ID: "fuel", Label: "Fuel", Color: "#FF9F43", Icon: "⛽"},
	{ID: "investments", Label: "Investments", Color: "#FDCB6E", Icon: "📈"},
	{ID: "saving", Label: "Saving", Color: "#2ECC71", Icon: "💎"},
	{ID: "rent", Label: "Rent/Mortgage", Color: "#6C5CE7", Icon: "🏠"},
	{ID: "other", Label: "Other", Color: "#A0A0A0", Icon: "📋"},
}

// IncomeCategories is the catalog for credit transactions.
var IncomeCategories = []Category{
	{ID: "salary", Label: "Salary", Color: "#26DE81", Icon: "💰"},
	{ID: "freelance", Label: "Freelance", Color: "#10B981", Icon: "💻"},
	{ID: "investment", Label: "Investment Returns", Color: "#059669", Icon: "📈"},
	{ID: "bonus", Label: "Bonus", Color: "#065F46", Icon: "🎯"},
	{ID: "other_income", Label: "Other Income", Color: "#6B7280", Icon: "💵"},
}

// PaymentModes is the catalog of payment channels. The first entry is the
// lookup fallback.
var PaymentModes = []PaymentMode{
	{ID: "cash", Label: "Cash", Icon: "💵"},
	{ID: "credit_card", Label: "Credit Card", Icon: "💳"},
	{ID: "debit_card", Label: "Debit Card", Icon: "💳"},
	{ID: "upi", Label: "UPI", Icon: "📱"},
	{ID: "net_banking", Label: "Net Banking", Icon: "🏦"},
	{ID: "wallet", Label: "Digital Wallet", Icon: "📲"},
	{ID: "bank_transfer", Label: "Bank Transfer", Icon: "💰"},
	{ID: "cheque", Label: "Cheque", Icon: "📝"},
}

// CategoryByID resolves an id against both catalogs, expense first. Unknown
// ids resolve to the expense "other" entry.
func CategoryByID(id string) Category {
	for _, c := range ExpenseCategories {
		if c.ID == id {
			return c
		}
	}
	for _, c := range IncomeCategories {
		if c.ID == id {
			return c
		}
	}
	return ExpenseCategories[len(ExpenseCategories)-1]
}

// IncomeCategoryByID resolves an id against the income catalog only, falling
// back to "other_income".
func IncomeCategoryByID(id string) Category {
	for _, c := range IncomeCategories {
		if c.ID == id {
			return c
		}
	}
	return IncomeCategories[len(IncomeCategories)-1]
}

// PaymentModeByID resolves an id against the payment-mode catalog, falling
// back to the first entry.
func PaymentModeByID(id string) PaymentMode {
	for _, m := range PaymentModes {
		if m.ID == id {
			return m
		}
	}
	return PaymentModes[0]
}
