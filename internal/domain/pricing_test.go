package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePrice(t *testing.T) {
	start := date(2026, 3, 1)

	tests := []struct {
		name     string
		end      time.Time
		rate     int64
		discount int
		want     int64
	}{
		{name: "two days", end: start.AddDate(0, 0, 1), rate: 1000, discount: 0, want: 2000},
		{name: "short stay ignores discount", end: start.AddDate(0, 0, 26), rate: 1000, discount: 10, want: 27000},
		{name: "exactly 28 days gets discount", end: start.AddDate(0, 0, 27), rate: 1000, discount: 10, want: 25200},
		{name: "40 days with 10 percent", end: start.AddDate(0, 0, 39), rate: 1000, discount: 10, want: 36000},
		{name: "41 days with 10 percent", end: start.AddDate(0, 0, 40), rate: 1000, discount: 10, want: 36900},
		{name: "long stay without discount", end: start.AddDate(0, 0, 29), rate: 2000, discount: 0, want: 60000},
		{name: "discount rounds down", end: start.AddDate(0, 0, 29), rate: 333, discount: 7, want: 9990 - 699},
		{name: "max discount", end: start.AddDate(0, 0, 29), rate: 100, discount: 90, want: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePrice(start, tt.end, tt.rate, tt.discount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ComputePrice(start, tt.end, tt.rate, tt.discount)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestComputePrice_RejectsInvalidInput(t *testing.T) {
	start := date(2026, 3, 1)

	_, err := ComputePrice(start, start.AddDate(0, 0, 3), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDailyRate)

	_, err = ComputePrice(start, start.AddDate(0, 0, 3), -5, 0)
	assert.ErrorIs(t, err, ErrInvalidDailyRate)

	_, err = ComputePrice(start, start.AddDate(0, 0, 3), 1000, 91)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = ComputePrice(start, start.AddDate(0, 0, -1), 1000, 0)
	assert.ErrorIs(t, err, ErrInvalidStayLength)
}
