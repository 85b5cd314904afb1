package provider

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMatchup(t *testing.T) {
	tests := []struct {
		matchup  string
		team     string
		opponent string
		venue    Venue
	}{
		{"BOS vs. LAL", "BOS", "LAL", VenueHome},
		{"BOS vs LAL", "BOS", "LAL", VenueHome},
		{"LAL @ BOS", "LAL", "BOS", VenueAway},
		{"BOS", "BOS", "", VenueUnknown},
		{"", "", "", VenueUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.matchup, func(t *testing.T) {
			team, opp, venue := ParseMatchup(tt.matchup)
			assert.Equal(t, tt.team, team)
			assert.Equal(t, tt.opponent, opp)
			assert.Equal(t, tt.venue, venue)
		})
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"34:30", 34.5, true},
		{"36", 36, true},
		{"10.5", 10.5, true},
		{"", 0, false},
		{"DNP", 0, false},
		{"12:xx", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMinutes(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestExtractValue(t *testing.T) {
	v, ok := ExtractValue(12.0)
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	v, ok = ExtractValue(" 0.455 ")
	assert.True(t, ok)
	assert.Equal(t, 0.455, v)

	_, ok = ExtractValue(nil)
	assert.False(t, ok)

	_, ok = ExtractValue(map[string]interface{}{"total": 3})
	assert.False(t, ok)
}

func TestExtractString(t *testing.T) {
	s, ok := ExtractString(1610612738.0)
	assert.True(t, ok)
	assert.Equal(t, "1610612738", s)

	s, ok = ExtractString("0022400061")
	assert.True(t, ok)
	assert.Equal(t, "0022400061", s)

	_, ok = ExtractString(nil)
	assert.False(t, ok)
}

func TestParseGameDate(t *testing.T) {
	want := time.Date(2025, time.April, 13, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"APR 13, 2025", "Apr 13, 2025", "2025-04-13T00:00:00", "2025-04-13"} {
		got, ok := ParseGameDate(in)
		assert.True(t, ok, in)
		assert.True(t, want.Equal(got), in)
	}
	_, ok := ParseGameDate("yesterday")
	assert.False(t, ok)
}

func TestGameLogEntryStat(t *testing.T) {
	e := GameLogEntry{Stats: map[Column]float64{ColPoints: 31}}

	v, ok := e.Stat(ColPoints)
	assert.True(t, ok)
	assert.Equal(t, 31.0, v)

	_, ok = e.Stat(ColTurnovers)
	assert.False(t, ok)
	assert.Equal(t, 0.0, e.Value(ColTurnovers))
}

func TestRetrievalError(t *testing.T) {
	err := fmt.Errorf("season log: %w", &RetrievalError{Endpoint: "teamgamelog", Err: ErrNoRows})
	assert.True(t, IsRetrieval(err))
	assert.True(t, errors.Is(err, ErrNoRows))
	assert.Contains(t, err.Error(), "teamgamelog")
	assert.False(t, IsRetrieval(errors.New("boom")))
}
