package fun

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToDDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "new year",
			date: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
			want: "Today is Sweetmorn, the 1st day of Chaos in the YOLD 3190",
		},
		{
			name: "st tibs day",
			date: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want: "Today is St. Tib's Day in the YOLD 3190",
		},
		{
			name: "after tibs day in leap year",
			date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: "Today is Setting Orange, the 60th day of Chaos in the YOLD 3190",
		},
		{
			name: "march first in common year",
			date: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: "Today is Setting Orange, the 60th day of Chaos in the YOLD 3189",
		},
		{
			name: "first of discord",
			date: time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: "Today is Prickle-Prickle, the 1st day of Discord in the YOLD 3189",
		},
		{
			name: "last day of year",
			date: time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: "Today is Setting Orange, the 73rd day of The Aftermath in the YOLD 3189",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDDate(tt.date).String())
		})
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 73: "rd"}
	for n, want := range tests {
		assert.Equal(t, want, OrdinalSuffix(n), "n=%v", n)
	}
}

func TestEightBall(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		answer, idx := EightBall(r)
		assert.Equal(t, EightBallAnswers[idx], answer)
	}

	assert.Equal(t, ColorPositive, EightBallColor(0))
	assert.Equal(t, ColorPositive, EightBallColor(9))
	assert.Equal(t, ColorNeutral, EightBallColor(10))
	assert.Equal(t, ColorNeutral, EightBallColor(14))
	assert.Equal(t, ColorNegative, EightBallColor(15))
	assert.Equal(t, ColorNegative, EightBallColor(19))
}

func TestDarkSoulsData(t *testing.T) {
	for _, list := range [][]string{DS1Templates, DS1Fillers, DS3Templates, DS3Fillers, DS3Conjunctions} {
		assert.NotEmpty(t, list)
		for _, s := range list {
			assert.NotEmpty(t, s)
		}
	}
}

func TestDarkSoulsMessages(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		msg := DarkSouls(r)
		assert.NotEmpty(t, msg)
		assert.NotContains(t, msg, "{}")

		msg = DarkSouls3(r)
		assert.NotEmpty(t, msg)
		assert.NotContains(t, msg, "{}")
		assert.False(t, strings.HasPrefix(msg, " "))
	}
}
