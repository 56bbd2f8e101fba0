package factstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

// Keys the host application stores its collections under.
const (
	DebtorsKey   = "debtors"
	CreditorsKey = "creditors"
	GoodsKey     = "goods"
	SalesKey     = "sales"
	SettingsKey  = "app_settings"
)

// Store reads business facts and notification preferences from the shared
// key-value store. Nothing is cached; every call reads the latest value.
type Store struct {
	kv domain.KeyValueStore
}

var (
	_ domain.FactSource       = (*Store)(nil)
	_ domain.PreferenceSource = (*Store)(nil)
)

func NewStore(kv domain.KeyValueStore) *Store {
	return &Store{kv: kv}
}

func (s *Store) Debtors(ctx context.Context) ([]domain.Debtor, error) {
	records, err := loadCollection[debtorRecord](ctx, s.kv, DebtorsKey)
	if err != nil {
		return nil, err
	}
	return convert(ctx, DebtorsKey, records, debtorRecord.toDomain), nil
}

func (s *Store) Creditors(ctx context.Context) ([]domain.Creditor, error) {
	records, err := loadCollection[creditorRecord](ctx, s.kv, CreditorsKey)
	if err != nil {
		return nil, err
	}
	return convert(ctx, CreditorsKey, records, creditorRecord.toDomain), nil
}

func (s *Store) Goods(ctx context.Context) ([]domain.Good, error) {
	records, err := loadCollection[goodRecord](ctx, s.kv, GoodsKey)
	if err != nil {
		return nil, err
	}
	return convert(ctx, GoodsKey, records, goodRecord.toDomain), nil
}

func (s *Store) Sales(ctx context.Context) ([]domain.Sale, error) {
	records, err := loadCollection[saleRecord](ctx, s.kv, SalesKey)
	if err != nil {
		return nil, err
	}
	return convert(ctx, SalesKey, records, saleRecord.toDomain), nil
}

// Preferences returns the notification toggles. A missing settings object
// means every category is off.
func (s *Store) Preferences(ctx context.Context) (domain.Preferences, error) {
	data, err := s.kv.Get(ctx, SettingsKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.Preferences{}, nil
		}
		return domain.Preferences{}, fmt.Errorf("get %s: %w", SettingsKey, err)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, SettingsKey, err)
	}
	return prefs, nil
}

// SavePreferences merges the toggles into the stored settings object,
// leaving unrelated settings untouched.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	settings := map[string]any{}

	data, err := s.kv.Get(ctx, SettingsKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, SettingsKey, err)
		}
	case errors.Is(err, domain.ErrKeyNotFound):
	default:
		return fmt.Errorf("get %s: %w", SettingsKey, err)
	}

	settings["notifDebtReminder"] = prefs.DebtReminder
	settings["notifLowStock"] = prefs.LowStock
	settings["notifDailySales"] = prefs.SalesMilestone
	settings["notifCreditorOwed"] = prefs.CreditorReminder

	out, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", SettingsKey, err)
	}
	return s.kv.Set(ctx, SettingsKey, out)
}

// Snapshot is a full set of business collections, used for seeding.
type Snapshot struct {
	Debtors   []domain.Debtor
	Creditors []domain.Creditor
	Goods     []domain.Good
	Sales     []domain.Sale
}

// Seed overwrites the four collections with snapshot.
func (s *Store) Seed(ctx context.Context, snapshot Snapshot) error {
	debtors := make([]debtorRecord, 0, len(snapshot.Debtors))
	for _, d := range snapshot.Debtors {
		debtors = append(debtors, debtorRecord{Name: d.Name, Balance: number(d.Balance), RepaymentDate: d.RepaymentDate})
	}
	creditors := make([]creditorRecord, 0, len(snapshot.Creditors))
	for _, c := range snapshot.Creditors {
		creditors = append(creditors, creditorRecord{Name: c.Name, Balance: number(c.Balance), LastPurchase: c.LastPurchase})
	}
	goods := make([]goodRecord, 0, len(snapshot.Goods))
	for _, g := range snapshot.Goods {
		goods = append(goods, goodRecord{ID: flexString(g.ID), Name: g.Name, StockQuantity: number(g.StockQuantity)})
	}
	sales := make([]saleRecord, 0, len(snapshot.Sales))
	for _, sale := range snapshot.Sales {
		sales = append(sales, saleRecord{Date: sale.Date, Total: number(sale.Total), Status: sale.Status})
	}

	return errors.Join(
		saveCollection(ctx, s.kv, DebtorsKey, debtors),
		saveCollection(ctx, s.kv, CreditorsKey, creditors),
		saveCollection(ctx, s.kv, GoodsKey, goods),
		saveCollection(ctx, s.kv, SalesKey, sales),
	)
}

func loadCollection[T any](ctx context.Context, kv domain.KeyValueStore, key string) ([]T, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, key, err)
	}

	records := make([]T, 0, len(raw))
	for i, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			slog.WarnContext(ctx, "skipping unreadable record",
				slog.String("collection", key),
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func convert[R any, D any](ctx context.Context, key string, records []R, fn func(R) (D, bool)) []D {
	out := make([]D, 0, len(records))
	for i, record := range records {
		item, ok := fn(record)
		if !ok {
			slog.WarnContext(ctx, "skipping record with non-numeric amount",
				slog.String("collection", key),
				slog.Int("index", i),
			)
			continue
		}
		out = append(out, item)
	}
	return out
}

func saveCollection[T any](ctx context.Context, kv domain.KeyValueStore, key string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
