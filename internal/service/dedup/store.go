package dedup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

const (
	keyPrefix = "reminder:dedup:"
	dayLayout = "2006-01-02"

	DefaultRetentionDays = 7
)

// Key builds the day-scoped key for a category, e.g.
// reminder:dedup:low_stock:2024-03-09.
func Key(category domain.Category, day string) string {
	return keyPrefix + category.String() + ":" + day
}

// ParseKey splits a dedup key into its category and day.
func ParseKey(key string) (domain.Category, time.Time, error) {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return "", time.Time{}, fmt.Errorf("not a dedup key: %q", key)
	}
	idx := strings.LastIndex(rest, ":")
	if idx < 0 {
		return "", time.Time{}, fmt.Errorf("dedup key without day: %q", key)
	}
	category, err := domain.ParseCategory(rest[:idx])
	if err != nil {
		return "", time.Time{}, err
	}
	day, err := time.Parse(dayLayout, rest[idx+1:])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("dedup key with invalid day %q: %w", key, err)
	}
	return category, day, nil
}

// Store keeps the per-day markers that stop a recurring condition from
// alerting twice on the same calendar day. Values only ever grow within a
// day; a new day starts from an empty key.
type Store struct {
	kv            domain.KeyValueStore
	retentionDays int
}

func NewStore(kv domain.KeyValueStore, retentionDays int) *Store {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Store{
		kv:            kv,
		retentionDays: retentionDays,
	}
}

func (s *Store) RetentionDays() int {
	return s.retentionDays
}

// Markers returns the identities already notified for category on day.
func (s *Store) Markers(ctx context.Context, category domain.Category, day string) (map[string]struct{}, error) {
	key := Key(category, day)

	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("get markers %s: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMarkerData, key, err)
	}

	markers := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		markers[id] = struct{}{}
	}
	return markers, nil
}

// AddMarkers appends identities to the day's marker set.
func (s *Store) AddMarkers(ctx context.Context, category domain.Category, day string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	markers, err := s.Markers(ctx, category, day)
	if err != nil {
		return err
	}
	for _, id := range ids {
		markers[id] = struct{}{}
	}

	merged := make([]string, 0, len(markers))
	for id := range markers {
		merged = append(merged, id)
	}
	sort.Strings(merged)

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMarkerData, err)
	}

	key := Key(category, day)
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set markers %s: %w", key, err)
	}
	return nil
}

// Watermark returns the highest sales milestone already notified on day,
// or 0 when none has been.
func (s *Store) Watermark(ctx context.Context, day string) (int, error) {
	key := Key(domain.CategorySalesMilestone, day)

	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get watermark %s: %w", key, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidMarkerData, key, err)
	}
	return value, nil
}

// RaiseWatermark stores value for day unless a higher or equal watermark is
// already recorded. It reports whether the stored value changed.
func (s *Store) RaiseWatermark(ctx context.Context, day string, value int) (bool, error) {
	current, err := s.Watermark(ctx, day)
	if err != nil {
		return false, err
	}
	if value <= current {
		return false, nil
	}

	key := Key(domain.CategorySalesMilestone, day)
	if err := s.kv.Set(ctx, key, []byte(strconv.Itoa(value))); err != nil {
		return false, fmt.Errorf("set watermark %s: %w", key, err)
	}
	return true, nil
}

// Purge deletes marker keys for days older than the retention window,
// counted back from the calendar day of now. It returns the number of keys
// removed.
func (s *Store) Purge(ctx context.Context, now time.Time) (int, error) {
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list dedup keys: %w", err)
	}

	today, _ := time.Parse(dayLayout, now.Format(dayLayout))
	cutoff := today.AddDate(0, 0, -s.retentionDays)

	expired := make([]string, 0)
	for _, key := range keys {
		_, day, err := ParseKey(key)
		if err != nil {
			slog.WarnContext(ctx, "ignoring malformed dedup key",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		if day.Before(cutoff) {
			expired = append(expired, key)
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	if err := s.kv.Delete(ctx, expired...); err != nil {
		return 0, fmt.Errorf("delete expired dedup keys: %w", err)
	}

	slog.InfoContext(ctx, "purged expired dedup markers",
		slog.Int("deleted_count", len(expired)),
		slog.String("cutoff", cutoff.Format(dayLayout)),
	)

	return len(expired), nil
}
