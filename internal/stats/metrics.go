// Package stats turns game logs into the numbers reports are made of: team
// metric summaries, better/worse comparison flags, and combo-stat values
// checked against betting lines.
package stats

import (
	"math"

	"github.com/albapepper/bballscorer/internal/provider"
)

// MetricKey identifies a team summary metric.
type MetricKey string

const (
	MetricGames        MetricKey = "games_analyzed"
	MetricPoints       MetricKey = "points_per_game"
	MetricFieldGoalPct MetricKey = "field_goal_pct"
	MetricThreePct     MetricKey = "three_point_pct"
	MetricRebounds     MetricKey = "rebounds_per_game"
	MetricAssists      MetricKey = "assists_per_game"
	MetricTurnovers    MetricKey = "turnovers_per_game"
)

// metricDef describes how a metric is derived from a box-score column.
type metricDef struct {
	key     MetricKey
	label   string
	column  provider.Column
	percent bool
}

// metricDefs is the canonical metric order used by summaries and report rows.
var metricDefs = []metricDef{
	{key: MetricPoints, label: "Points per game", column: provider.ColPoints},
	{key: MetricFieldGoalPct, label: "FG%", column: provider.ColFieldGoalPc, percent: true},
	{key: MetricThreePct, label: "3PT%", column: provider.ColThreePc, percent: true},
	{key: MetricRebounds, label: "Rebounds per game", column: provider.ColRebounds},
	{key: MetricAssists, label: "Assists per game", column: provider.ColAssists},
	{key: MetricTurnovers, label: "Turnovers per game", column: provider.ColTurnovers},
}

// MetricOrder lists every metric key in display order.
func MetricOrder() []MetricKey {
	out := []MetricKey{MetricGames}
	for _, d := range metricDefs {
		out = append(out, d.key)
	}
	return out
}

// Label returns the display label of a metric.
func (k MetricKey) Label() string {
	if k == MetricGames {
		return "Games analyzed"
	}
	for _, d := range metricDefs {
		if d.key == k {
			return d.label
		}
	}
	return string(k)
}

// Metric is one named, rounded summary value.
type Metric struct {
	Key   MetricKey `json:"key"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// Summary is an ordered set of metrics computed over a window of games.
type Summary []Metric

// Get returns a metric value and whether the summary carries it.
func (s Summary) Get(key MetricKey) (float64, bool) {
	for _, m := range s {
		if m.Key == key {
			return m.Value, true
		}
	}
	return 0, false
}

// Empty reports whether the summary was computed over no games.
func (s Summary) Empty() bool {
	return len(s) == 0
}

// Aggregate summarizes a window of games: the game count, then the per-game
// average of each metric whose column the upstream rows exposed. Shooting
// percentages are scaled to 0-100. Every value is rounded to one decimal.
func Aggregate(entries []provider.GameLogEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	out := Summary{{Key: MetricGames, Label: MetricGames.Label(), Value: float64(len(entries))}}
	for _, d := range metricDefs {
		var sum float64
		var n int
		for _, e := range entries {
			if v, ok := e.Stat(d.column); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		avg := sum / float64(n)
		if d.percent {
			avg *= 100
		}
		out = append(out, Metric{Key: d.key, Label: d.label, Value: Round1(avg)})
	}
	return out
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
