package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/albapepper/bballscorer/internal/provider"
)

// StatKey is a statistic a line can be set on: a base box-score stat, a sum
// of base stats, or a double/triple-double indicator.
type StatKey string

const (
	KeyPoints       StatKey = "pts"
	KeyRebounds     StatKey = "reb"
	KeyAssists      StatKey = "ast"
	KeyThreesMade   StatKey = "fg3m"
	KeySteals       StatKey = "stl"
	KeyBlocks       StatKey = "blk"
	KeyPRA          StatKey = "pra"
	KeyRebAst       StatKey = "ra"
	KeyPtsReb       StatKey = "pr"
	KeyPtsAst       StatKey = "pa"
	KeyStlBlk       StatKey = "sb"
	KeyPtsBlk       StatKey = "pb"
	KeyDoubleDouble StatKey = "dd"
	KeyTripleDouble StatKey = "td"
)

type keyDef struct {
	key     StatKey
	label   string
	columns []provider.Column // summed; nil for the indicators
}

var keyDefs = []keyDef{
	{KeyPoints, "PTS", []provider.Column{provider.ColPoints}},
	{KeyRebounds, "REB", []provider.Column{provider.ColRebounds}},
	{KeyAssists, "AST", []provider.Column{provider.ColAssists}},
	{KeyThreesMade, "FG3M", []provider.Column{provider.ColThreesMade}},
	{KeySteals, "STL", []provider.Column{provider.ColSteals}},
	{KeyBlocks, "BLK", []provider.Column{provider.ColBlocks}},
	{KeyPRA, "PRA", []provider.Column{provider.ColPoints, provider.ColRebounds, provider.ColAssists}},
	{KeyRebAst, "RA", []provider.Column{provider.ColRebounds, provider.ColAssists}},
	{KeyPtsReb, "P+R", []provider.Column{provider.ColPoints, provider.ColRebounds}},
	{KeyPtsAst, "P+A", []provider.Column{provider.ColPoints, provider.ColAssists}},
	{KeyStlBlk, "S+B", []provider.Column{provider.ColSteals, provider.ColBlocks}},
	{KeyPtsBlk, "P+B", []provider.Column{provider.ColPoints, provider.ColBlocks}},
	{KeyDoubleDouble, "DD", nil},
	{KeyTripleDouble, "TD", nil},
}

// doubleColumns are the categories counted toward double- and triple-doubles.
var doubleColumns = []provider.Column{
	provider.ColPoints, provider.ColRebounds, provider.ColAssists, provider.ColSteals, provider.ColBlocks,
}

// AllowedKeys lists every accepted statistic key.
func AllowedKeys() []StatKey {
	out := make([]StatKey, len(keyDefs))
	for i, d := range keyDefs {
		out[i] = d.key
	}
	return out
}

func lookupKey(k StatKey) (keyDef, bool) {
	for _, d := range keyDefs {
		if d.key == k {
			return d, true
		}
	}
	return keyDef{}, false
}

// Label returns the column label of a key, e.g. "PRA" or "P+R".
func (k StatKey) Label() string {
	if d, ok := lookupKey(k); ok {
		return d.label
	}
	return strings.ToUpper(string(k))
}

// Valid reports whether k is one of the allowed keys.
func (k StatKey) Valid() bool {
	_, ok := lookupKey(k)
	return ok
}

// ValidationError rejects a statistic key outside the allowed set.
type ValidationError struct {
	Key     string
	Allowed []StatKey
}

func (e *ValidationError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, k := range e.Allowed {
		allowed[i] = string(k)
	}
	return fmt.Sprintf("unknown stat key %q, allowed: %s", e.Key, strings.Join(allowed, ", "))
}

// ParseKey normalizes and validates a statistic key.
func ParseKey(s string) (StatKey, error) {
	k := StatKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", &ValidationError{Key: s, Allowed: AllowedKeys()}
	}
	return k, nil
}

// --------------------------------------------------------------------------
// Lines
// --------------------------------------------------------------------------

// Line is a threshold set on a statistic. A game hits the line when the
// statistic reaches or exceeds it.
type Line struct {
	Key       StatKey `json:"key"`
	Threshold float64 `json:"threshold"`
}

// Label renders the threshold the way lines are quoted: 26 -> "26.0+".
func (l Line) Label() string {
	return LineLabel(l.Threshold)
}

// LineLabel renders a threshold with at least one decimal and a trailing "+".
func LineLabel(threshold float64) string {
	s := strconv.FormatFloat(threshold, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "+"
}

// Hit reports whether a value meets the line. Ties are hits.
func (l Line) Hit(value float64) bool {
	return value >= l.Threshold
}

// ValidateLines checks every key before anything is fetched.
func ValidateLines(lines []Line) error {
	for _, l := range lines {
		if !l.Key.Valid() {
			return &ValidationError{Key: string(l.Key), Allowed: AllowedKeys()}
		}
	}
	return nil
}

// ParseLine parses "pts:26" or "pts=26".
func ParseLine(s string) (Line, error) {
	key, value, ok := strings.Cut(s, ":")
	if !ok {
		key, value, ok = strings.Cut(s, "=")
	}
	k, err := ParseKey(key)
	if err != nil {
		return Line{}, err
	}
	if !ok {
		return Line{}, fmt.Errorf("line %q: expected key:threshold", s)
	}
	threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Line{}, fmt.Errorf("line %q: bad threshold: %w", s, err)
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return Line{}, fmt.Errorf("line %q: threshold must be a finite number", s)
	}
	return Line{Key: k, Threshold: threshold}, nil
}

// ParseLines parses a comma-separated list such as "pts:26,reb:7.5". A key
// given twice keeps its first position and its last threshold.
func ParseLines(s string) ([]Line, error) {
	var lines []Line
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := ParseLine(part)
		if err != nil {
			return nil, err
		}
		lines = MergeLine(lines, l)
	}
	return lines, nil
}

// MergeLine appends l, or replaces the threshold of an existing line with the
// same key.
func MergeLine(lines []Line, l Line) []Line {
	for i := range lines {
		if lines[i].Key == l.Key {
			lines[i].Threshold = l.Threshold
			return lines
		}
	}
	return append(lines, l)
}

// --------------------------------------------------------------------------
// Values
// --------------------------------------------------------------------------

// Value computes a statistic for one game. Sums are unavailable when any of
// their columns is missing. The indicators count only the categories present
// and are always available.
func Value(k StatKey, box map[provider.Column]float64) (float64, bool) {
	switch k {
	case KeyDoubleDouble:
		return indicator(DoubleDouble(box)), true
	case KeyTripleDouble:
		return indicator(TripleDouble(box)), true
	}

	d, ok := lookupKey(k)
	if !ok {
		return 0, false
	}
	var sum float64
	for _, col := range d.columns {
		v, ok := box[col]
		if !ok {
			return 0, false
		}
		sum += v
	}
	return sum, true
}

// DoubleDouble reports whether at least two of points, rebounds, assists,
// steals and blocks reached 10.
func DoubleDouble(box map[provider.Column]float64) bool {
	return categoriesInDoubleFigures(box) >= 2
}

// TripleDouble reports whether at least three of the categories reached 10.
func TripleDouble(box map[provider.Column]float64) bool {
	return categoriesInDoubleFigures(box) >= 3
}

func categoriesInDoubleFigures(box map[provider.Column]float64) int {
	n := 0
	for _, col := range doubleColumns {
		if box[col] >= 10 {
			n++
		}
	}
	return n
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// --------------------------------------------------------------------------
// Evaluator
// --------------------------------------------------------------------------

// Cell is one line evaluated against one game.
type Cell struct {
	Key       StatKey `json:"key"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Line      string  `json:"line"`
	Hit       bool    `json:"hit"`
	Available bool    `json:"available"`
}

// Tally is the running hit count of one line across the evaluated games.
type Tally struct {
	Key       StatKey `json:"key"`
	Label     string  `json:"label"`
	Threshold float64 `json:"threshold"`
	Line      string  `json:"line"`
	Hits      int     `json:"hits"`
	Games     int     `json:"games"`
	HitRate   float64 `json:"hit_rate"` // percent, one decimal
}

// Evaluator checks a fixed set of lines game by game and keeps the tallies.
type Evaluator struct {
	lines []Line
	hits  []int
	games []int
}

// NewEvaluator validates the lines and prepares empty tallies.
func NewEvaluator(lines []Line) (*Evaluator, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}
	return &Evaluator{
		lines: lines,
		hits:  make([]int, len(lines)),
		games: make([]int, len(lines)),
	}, nil
}

// Evaluate computes one cell per line, in line order, and updates the
// tallies. A statistic the game does not expose yields an unavailable cell
// that counts neither as a hit nor as a game.
func (e *Evaluator) Evaluate(box map[provider.Column]float64) []Cell {
	cells := make([]Cell, len(e.lines))
	for i, l := range e.lines {
		c := Cell{Key: l.Key, Label: l.Key.Label(), Line: l.Label()}
		if v, ok := Value(l.Key, box); ok {
			c.Value = v
			c.Available = true
			c.Hit = l.Hit(v)
			e.games[i]++
			if c.Hit {
				e.hits[i]++
			}
		}
		cells[i] = c
	}
	return cells
}

// Tallies returns the hit counts so far, in line order.
func (e *Evaluator) Tallies() []Tally {
	out := make([]Tally, len(e.lines))
	for i, l := range e.lines {
		t := Tally{
			Key:       l.Key,
			Label:     l.Key.Label(),
			Threshold: l.Threshold,
			Line:      l.Label(),
			Hits:      e.hits[i],
			Games:     e.games[i],
		}
		if t.Games > 0 {
			t.HitRate = Round1(float64(t.Hits) / float64(t.Games) * 100)
		}
		out[i] = t
	}
	return out
}
