package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"partial overlap", at(10, 0), at(12, 0), at(11, 0), at(13, 0), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 30), true},
		{"same interval", at(10, 0), at(12, 0), at(10, 0), at(12, 0), true},
		{"adjacent after", at(10, 0), at(12, 0), at(12, 0), at(14, 0), false},
		{"adjacent before", at(10, 0), at(12, 0), at(8, 0), at(10, 0), false},
		{"disjoint", at(10, 0), at(12, 0), at(13, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.expected, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestCalculatePrice(t *testing.T) {
	assert.InDelta(t, 100.0, CalculatePrice(at(10, 0), at(12, 0), 50), 1e-9)
	assert.InDelta(t, 75.0, CalculatePrice(at(10, 0), at(11, 30), 50), 1e-9)
	assert.InDelta(t, 0.0, CalculatePrice(at(10, 0), at(12, 0), 0), 1e-9)
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(100, 100))
	assert.True(t, WithinTolerance(100, 100.5))
	assert.True(t, WithinTolerance(100, 99))
	assert.True(t, WithinTolerance(100, 101))
	assert.False(t, WithinTolerance(100, 102))
	assert.False(t, WithinTolerance(100, 98.9))
}

func TestValidTimeRange(t *testing.T) {
	assert.True(t, ValidTimeRange(at(10, 0), at(10, 1)))
	assert.False(t, ValidTimeRange(at(10, 0), at(10, 0)))
	assert.False(t, ValidTimeRange(at(11, 0), at(10, 0)))
}

func TestCheckPrice(t *testing.T) {
	calculated, err := CheckPrice(at(10, 0), at(12, 0), 50, 100.5)
	assert.NoError(t, err)
	assert.InDelta(t, 100.0, calculated, 1e-9)

	calculated, err = CheckPrice(at(10, 0), at(12, 0), 50, 102)
	assert.ErrorIs(t, err, ErrPriceMismatch)
	var mismatch *PriceMismatchError
	if assert.ErrorAs(t, err, &mismatch) {
		assert.InDelta(t, 100.0, mismatch.Calculated, 1e-9)
		assert.InDelta(t, 102.0, mismatch.Provided, 1e-9)
	}
	assert.InDelta(t, 100.0, calculated, 1e-9)
}
