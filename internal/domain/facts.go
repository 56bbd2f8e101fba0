package domain

// Debtor is a customer who bought on credit. RepaymentDate is kept as the
// raw stored string; calculators skip records they cannot parse.
type Debtor struct {
	Name          string
	Balance       float64
	RepaymentDate string
}

// Creditor is a supplier the business owes money to.
type Creditor struct {
	Name         string
	Balance      float64
	LastPurchase string
}

type Good struct {
	ID            string
	Name          string
	StockQuantity float64
}

const SaleStatusVoided = "voided"

type Sale struct {
	Date   string
	Total  float64
	Status string
}

func (s Sale) IsVoided() bool {
	return s.Status == SaleStatusVoided
}

// Preferences holds the per-category notification toggles.
type Preferences struct {
	DebtReminder     bool `json:"notifDebtReminder"`
	LowStock         bool `json:"notifLowStock"`
	SalesMilestone   bool `json:"notifDailySales"`
	CreditorReminder bool `json:"notifCreditorOwed"`
}

func (p Preferences) Enabled(c Category) bool {
	switch c {
	case CategoryDebtReminder:
		return p.DebtReminder
	case CategoryLowStock:
		return p.LowStock
	case CategorySalesMilestone:
		return p.SalesMilestone
	case CategoryCreditorReminder:
		return p.CreditorReminder
	default:
		return false
	}
}
