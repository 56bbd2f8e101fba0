package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/service/reminder"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outcomeColor(o reminder.Outcome) *color.Color {
	switch o {
	case reminder.OutcomeScheduled, reminder.OutcomeDisabled, reminder.OutcomeNoChange:
		return color.New(color.FgGreen)
	case reminder.OutcomePreferenceOff, reminder.OutcomePermissionDenied:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func printPassResult(w io.Writer, format string, r reminder.PassResult) error {
	if format == "json" {
		return writeJSON(w, r)
	}

	fmt.Fprintf(w, "%s %s (%s)\n", r.Category, outcomeColor(r.Outcome).Sprint(r.Outcome), r.Trigger)
	fmt.Fprintf(w, "  pass:      %s\n", r.PassID)
	fmt.Fprintf(w, "  cancelled: %v\n", r.Cancelled)
	fmt.Fprintf(w, "  scheduled: %v\n", r.Scheduled)
	if r.Dropped > 0 {
		fmt.Fprintf(w, "  dropped:   %s\n", color.New(color.FgYellow).Sprint(r.Dropped))
	}
	if r.Skipped > 0 {
		fmt.Fprintf(w, "  skipped:   %d\n", r.Skipped)
	}
	if r.Error != "" {
		fmt.Fprintf(w, "  error:     %s\n", color.New(color.FgRed).Sprint(r.Error))
	}
	return nil
}
