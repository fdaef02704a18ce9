package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserDate(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		input string
		want  string
	}{
		{"12/01/2026", "2026-01-12"},
		{"12-01-2026", "2026-01-12"},
		{"12/01", "2026-01-12"},
		{"12-01", "2026-01-12"},
		{"09/12", "2026-12-09"},
		{"9/12", "2026-12-09"},
		{"9-12", "2026-12-09"},
		{"9/2/2027", "2027-02-09"},
		{"1/1", "2026-01-01"},
		{" 12/01 ", "2026-01-12"},
		{"31/12/2027", "2027-12-31"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseUserDate(tc.input, now)
			require.True(t, ok)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseUserDateRejectsGarbage(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"", "mañana", "2026/01/12", "12.01", "32/01", "12/13", "12/01/26",
		"29/02", // 2026 is not a leap year
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := ParseUserDate(input, now)
			assert.False(t, ok)
		})
	}
}

func TestParseUserDateLeapYear(t *testing.T) {
	now := time.Date(2028, time.March, 5, 9, 0, 0, 0, time.UTC)

	got, ok := ParseUserDate("29/02", now)
	require.True(t, ok)
	assert.Equal(t, "2028-02-29", got.Format("2006-01-02"))
}
