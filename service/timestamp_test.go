package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("accepts explicit offsets", func(t *testing.T) {
		cases := map[string]time.Time{
			"2023-11-02T10:30:00Z":             time.Date(2023, 11, 2, 10, 30, 0, 0, time.UTC),
			"2023-11-02T10:30:00.250Z":         time.Date(2023, 11, 2, 10, 30, 0, 250_000_000, time.UTC),
			"2023-11-02T07:30:00-03:00":        time.Date(2023, 11, 2, 10, 30, 0, 0, time.UTC),
			"2023-11-02 10:30:00+00:00":        time.Date(2023, 11, 2, 10, 30, 0, 0, time.UTC),
			"2023-11-02T12:30:00.000000+02:00": time.Date(2023, 11, 2, 10, 30, 0, 0, time.UTC),
		}
		for in, want := range cases {
			got, err := ParseTimestamp(in)
			require.NoError(t, err, in)
			assert.True(t, want.Equal(got), "%s: got %s", in, got)
		}
	})

	t.Run("rejects timestamps without offset", func(t *testing.T) {
		for _, in := range []string{"2023-11-02T10:30:00", "2023-11-02 10:30:00", "2023-11-02"} {
			_, err := ParseTimestamp(in)
			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "no UTC offset")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseTimestamp("yesterday")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not ISO 8601")
	})
}
