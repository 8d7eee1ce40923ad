package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30", 30 * time.Second},
		{"90s", 90 * time.Second},
		{"5m", 5 * time.Minute},
		{"1h", time.Hour},
		{"1h30m", 90 * time.Minute},
		{"5m30s", 5*time.Minute + 30*time.Second},
		{"2d", 48 * time.Hour},
		{"4:30", 4*time.Minute + 30*time.Second},
		{"1:30:00", 90 * time.Minute},
		{" 10M ", 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "h30", "1:xx", "1:2:3:4", "0", "0s", "m"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "45s", Humanize(45*time.Second))
	assert.Equal(t, "5m", Humanize(5*time.Minute))
	assert.Equal(t, "1h 30m", Humanize(90*time.Minute))
	assert.Equal(t, "1d 2h 3m 4s", Humanize(26*time.Hour+3*time.Minute+4*time.Second))
	assert.Equal(t, "0s", Humanize(0))
}

func TestFormatEndTime(t *testing.T) {
	ts := time.Unix(1615555200, 0)
	assert.Equal(t, "<t:1615555200:T>", FormatEndTime(ts))
}
