package reminder

import (
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

// State is where a category's pass currently is.
type State int32

const (
	StateIdle State = iota
	StateCancelling
	StateRecomputing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCancelling:
		return "cancelling"
	case StateRecomputing:
		return "recomputing"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Trigger names what started a pass.
type Trigger string

const (
	TriggerEnable          Trigger = "enable"
	TriggerDisable         Trigger = "disable"
	TriggerRefresh         Trigger = "refresh"
	TriggerCreditSale      Trigger = "credit_sale"
	TriggerStockDeducted   Trigger = "stock_deducted"
	TriggerSaleCompleted   Trigger = "sale_completed"
	TriggerCreditorChanged Trigger = "creditor_changed"
)

// Outcome is how a pass ended.
type Outcome string

const (
	OutcomeScheduled           Outcome = "scheduled"
	OutcomeNoChange            Outcome = "no_change" // nothing submitted
	OutcomeDisabled            Outcome = "disabled"
	OutcomePreferenceOff       Outcome = "preference_off"
	OutcomePermissionDenied    Outcome = "permission_denied"
	OutcomeGatewayFailure      Outcome = "gateway_failure"
	OutcomeFactSourceFailure   Outcome = "fact_source_failure"
	OutcomeDedupStoreFailure   Outcome = "dedup_store_failure"
	OutcomeUnsupportedCategory Outcome = "unsupported_category"
)

// PassResult summarises one pass. Failures are reported here instead of
// being returned as errors.
type PassResult struct {
	PassID    string          `json:"pass_id"`
	Category  domain.Category `json:"category"`
	Trigger   Trigger         `json:"trigger"`
	Outcome   Outcome         `json:"outcome"`
	Cancelled []int           `json:"cancelled"`
	Scheduled []int           `json:"scheduled"`
	Dropped   int             `json:"dropped"`
	Skipped   int             `json:"skipped"`
	Error     string          `json:"error,omitempty"`
}

func (r PassResult) toRecord() domain.PassRecord {
	return domain.PassRecord{
		PassID:    r.PassID,
		Category:  r.Category,
		Trigger:   string(r.Trigger),
		Outcome:   string(r.Outcome),
		Cancelled: len(r.Cancelled),
		Scheduled: len(r.Scheduled),
		Dropped:   r.Dropped,
		Skipped:   r.Skipped,
	}
}
