package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(DateLayout, s, Location())
	require.NoError(t, err)
	return d
}

func TestAddWorkingDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		days  int
		want  string
	}{
		{"zero days returns start", "2024-01-05", 0, "2024-01-05"},
		{"negative days returns start", "2024-01-05", -3, "2024-01-05"},
		{"friday plus one lands monday", "2024-01-05", 1, "2024-01-08"},
		{"friday plus three skips weekend", "2024-01-05", 3, "2024-01-10"},
		{"monday plus four stays in week", "2024-01-08", 4, "2024-01-12"},
		{"monday plus five crosses weekend", "2024-01-08", 5, "2024-01-15"},
		{"saturday plus one lands monday", "2024-01-06", 1, "2024-01-08"},
		{"sunday plus one lands monday", "2024-01-07", 1, "2024-01-08"},
		{"ten days spans two weekends", "2024-01-01", 10, "2024-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddWorkingDays(date(t, tt.start), tt.days)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}
}

func TestAddWorkingDays_PreservesClockAndZone(t *testing.T) {
	start := time.Date(2024, 1, 5, 14, 30, 0, 0, Location())

	got := AddWorkingDays(start, 1)

	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, Location(), got.Location())
}

func TestAddWorkingDays_ZeroIsIdentity(t *testing.T) {
	for _, s := range []string{"2024-01-05", "2024-01-06", "2024-02-29"} {
		d := date(t, s)
		assert.True(t, d.Equal(AddWorkingDays(d, 0)), s)
	}
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(t, "2024-01-06")))
	assert.True(t, IsWeekend(date(t, "2024-01-07")))
	assert.False(t, IsWeekend(date(t, "2024-01-05")))
}
