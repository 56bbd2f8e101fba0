package domain

import "context"

//go:generate mockgen -source=fact_source.go -destination=fact_source_mock.go -package=domain

// FactSource returns the latest persisted business records. No filtering is
// applied by the source.
type FactSource interface {
	Debtors(ctx context.Context) ([]Debtor, error)
	Creditors(ctx context.Context) ([]Creditor, error)
	Goods(ctx context.Context) ([]Good, error)
	Sales(ctx context.Context) ([]Sale, error)
}

type PreferenceSource interface {
	Preferences(ctx context.Context) (Preferences, error)
}
