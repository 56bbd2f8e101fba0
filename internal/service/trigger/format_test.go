package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", formatCurrency(0))
	assert.Equal(t, "$12.50", formatCurrency(12.5))
	assert.Equal(t, "-$3.10", formatCurrency(-3.1))
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "2024-03-10", want: time.Date(2024, 3, 10, 0, 0, 0, 0, loc)},
		{raw: "2024-03-10T02:00:00Z", want: time.Date(2024, 3, 9, 21, 0, 0, 0, loc)},
		{raw: "2024-03-10T02:00:00.123Z", want: time.Date(2024, 3, 9, 21, 0, 0, 123000000, loc)},
		{raw: "2024-03-10T02:00:00", want: time.Date(2024, 3, 10, 2, 0, 0, 0, loc)},
		{raw: "2024-13-10", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseDate(tt.raw, loc)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errUnparseableDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "parseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		})
	}
}
