package gameclock

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		{input: "12:00", expected: 12 * time.Minute},
		{input: "2:00", expected: 2 * time.Minute},
		{input: "0:40", expected: 40 * time.Second},
		{input: " 1:05 ", expected: 65 * time.Second},
		{input: "90", expected: 90 * time.Second},
		{input: "0", expected: 0},
		{input: "", hasError: true},
		{input: "1:5", hasError: true},
		{input: "1:60", hasError: true},
		{input: "-1:00", hasError: true},
		{input: "-30", hasError: true},
		{input: "ab:cd", hasError: true},
		{input: "1:00:00", hasError: true},
		{input: "1440:00", expected: 24 * time.Hour},
		{input: "86400", expected: 24 * time.Hour},
		{input: "1440:01", hasError: true},
		{input: "86401", hasError: true},
		{input: "200000000:00", hasError: true},
		{input: "99999999999", hasError: true},
		{input: "99999999999999999999", hasError: true},
		{input: "+1:05", hasError: true},
		{input: "1:+5", hasError: true},
		{input: "+90", hasError: true},
		{input: ":05", hasError: true},
		{input: "1: 5", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseClock(tt.input)
			if tt.hasError {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "12:00", FormatClock(12*time.Minute))
	assert.Equal(t, "00:05", FormatClock(4600*time.Millisecond))
	assert.Equal(t, "00:04", FormatClock(4400*time.Millisecond))
	assert.Equal(t, "00:00", FormatClock(-3*time.Second))
	assert.Equal(t, "100:00", FormatClock(100*time.Minute))
}

func TestClock_RunsAgainstWallClock(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	c := NewClock(mClock, 2*time.Minute)

	assert.False(t, c.Running())
	assert.Equal(t, "02:00", c.String())

	c.Start()
	mClock.Advance(30 * time.Second).MustWait(ctx)
	assert.True(t, c.Running())
	assert.Equal(t, 90, c.Seconds())

	c.Pause()
	mClock.Advance(time.Minute).MustWait(ctx)
	assert.Equal(t, 90, c.Seconds())

	c.Start()
	mClock.Advance(1500 * time.Millisecond).MustWait(ctx)
	assert.Equal(t, 88500*time.Millisecond, c.Remaining())
	assert.Equal(t, "01:29", c.String())
}

func TestClock_StopsAtZero(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	c := NewClock(mClock, 10*time.Second)

	c.Start()
	mClock.Advance(25 * time.Second).MustWait(ctx)

	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.False(t, c.Running())

	c.Start()
	assert.False(t, c.Running(), "a clock at zero should not start")
}

func TestClock_SetAndReset(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	c := NewClock(mClock, 0)
	assert.Equal(t, DefaultPeriod, c.Period())

	c.Start()
	c.Set(45 * time.Second)
	assert.False(t, c.Running())
	mClock.Advance(10 * time.Second).MustWait(ctx)
	assert.Equal(t, 45, c.Seconds())

	c.Set(-time.Second)
	assert.Equal(t, 0, c.Seconds())

	c.Reset()
	assert.Equal(t, "12:00", c.String())
}
