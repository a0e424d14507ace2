package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayIndex(t *testing.T) {
	idx, ok := DayIndex("Sunday")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = DayIndex("  saturday ")
	assert.True(t, ok)
	assert.Equal(t, 6, idx)

	_, ok = DayIndex("caturday")
	assert.False(t, ok)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "sunday", DayKey(0))
	assert.Equal(t, "wednesday", DayKey(3))
	assert.Equal(t, "saturday", DayKey(6))
}
