package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/bootstrap"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/infra/factstore"
)

// Fixture is the YAML layout accepted by the seed command.
type Fixture struct {
	Settings  *FixtureSettings  `yaml:"settings,omitempty"`
	Debtors   []FixtureDebtor   `yaml:"debtors"`
	Creditors []FixtureCreditor `yaml:"creditors"`
	Goods     []FixtureGood     `yaml:"goods"`
	Sales     []FixtureSale     `yaml:"sales"`
}

type FixtureSettings struct {
	DebtReminder     bool `yaml:"debt_reminder"`
	LowStock         bool `yaml:"low_stock"`
	SalesMilestone   bool `yaml:"sales_milestone"`
	CreditorReminder bool `yaml:"creditor_reminder"`
}

type FixtureDebtor struct {
	Name          string  `yaml:"name"`
	Balance       float64 `yaml:"balance"`
	RepaymentDate string  `yaml:"repayment_date"`
}

type FixtureCreditor struct {
	Name         string  `yaml:"name"`
	Balance      float64 `yaml:"balance"`
	LastPurchase string  `yaml:"last_purchase"`
}

type FixtureGood struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	StockQuantity float64 `yaml:"stock_quantity"`
}

type FixtureSale struct {
	Date   string  `yaml:"date"`
	Total  float64 `yaml:"total"`
	Status string  `yaml:"status"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

func (f *Fixture) Snapshot() factstore.Snapshot {
	var s factstore.Snapshot
	for _, d := range f.Debtors {
		s.Debtors = append(s.Debtors, domain.Debtor{Name: d.Name, Balance: d.Balance, RepaymentDate: d.RepaymentDate})
	}
	for _, c := range f.Creditors {
		s.Creditors = append(s.Creditors, domain.Creditor{Name: c.Name, Balance: c.Balance, LastPurchase: c.LastPurchase})
	}
	for _, g := range f.Goods {
		s.Goods = append(s.Goods, domain.Good{ID: g.ID, Name: g.Name, StockQuantity: g.StockQuantity})
	}
	for _, sale := range f.Sales {
		s.Sales = append(s.Sales, domain.Sale{Date: sale.Date, Total: sale.Total, Status: sale.Status})
	}
	return s
}

func newSeedCommand(opts *RootOptions, factory Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Overwrite business records (and optionally settings) from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := LoadFixture(args[0])
			if err != nil {
				return err
			}

			return withComponents(cmd, opts, factory, func(ctx context.Context, c *bootstrap.Components) error {
				if err := c.Facts.Seed(ctx, fixture.Snapshot()); err != nil {
					return err
				}
				if s := fixture.Settings; s != nil {
					if err := c.Facts.SavePreferences(ctx, domain.Preferences{
						DebtReminder:     s.DebtReminder,
						LowStock:         s.LowStock,
						SalesMilestone:   s.SalesMilestone,
						CreditorReminder: s.CreditorReminder,
					}); err != nil {
						return err
					}
				}

				summary := map[string]int{
					"debtors":   len(fixture.Debtors),
					"creditors": len(fixture.Creditors),
					"goods":     len(fixture.Goods),
					"sales":     len(fixture.Sales),
				}
				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d debtors, %d creditors, %d goods, %d sales\n",
					summary["debtors"], summary["creditors"], summary["goods"], summary["sales"])
				return nil
			})
		},
	}
}
