package accounts

import "github.com/openbooks-dev/openbooks/internal/model"

// DefaultChart returns the chart of accounts seeded into new books.
// Seeded accounts are marked System and cannot be deleted.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: 1010, Code: "CASH", Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash on hand", System: true},
		{ID: 1020, Code: "BANK", Name: "Bank", Type: model.AccountTypeAsset, Description: "Primary bank account", System: true},
		{ID: 1200, Code: "AR", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Description: "Amounts owed by customers", System: true},
		{ID: 1400, Code: "INV", Name: "Inventory", Type: model.AccountTypeAsset, Description: "Stock on hand", System: true},
		{ID: 2100, Code: "AP", Name: "Accounts Payable", Type: model.AccountTypeLiability, Description: "Amounts owed to vendors", System: true},
		{ID: 2300, Code: "TAX", Name: "Tax Payable", Type: model.AccountTypeLiability, Description: "Collected tax due to the government", System: true},
		{ID: 3010, Code: "EQ", Name: "Owner's Equity", Type: model.AccountTypeEquity, Description: "Owner's equity", System: true},
		{ID: 4010, Code: "SALES", Name: "Sales Revenue", Type: model.AccountTypeRevenue, Description: "Product and service sales", System: true},
		{ID: 4020, Code: "OTHINC", Name: "Other Income", Type: model.AccountTypeRevenue},
		{ID: 5010, Code: "COGS", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense, Description: "Direct cost of items sold", System: true},
		{ID: 5100, Code: "RENT", Name: "Rent", Type: model.AccountTypeExpense},
		{ID: 5200, Code: "SAL", Name: "Salaries", Type: model.AccountTypeExpense},
		{ID: 5300, Code: "UTIL", Name: "Utilities", Type: model.AccountTypeExpense},
		{ID: 5900, Code: "MISC", Name: "Miscellaneous Expense", Type: model.AccountTypeExpense},
	}
}
