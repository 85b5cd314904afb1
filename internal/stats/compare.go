package stats

// Flag marks which side of a comparison is better.
type Flag string

const (
	FlagNone   Flag = ""
	FlagBetter Flag = "better"
	FlagWorse  Flag = "worse"
)

// Symbol renders the flag for tables: ✔ better, ✘ worse, blank otherwise.
func (f Flag) Symbol() string {
	switch f {
	case FlagBetter:
		return "✔"
	case FlagWorse:
		return "✘"
	default:
		return ""
	}
}

// LowerIsBetter reports whether a smaller value wins for the metric.
func LowerIsBetter(key MetricKey) bool {
	return key == MetricTurnovers
}

// Compare flags two teams' values of one metric. Games analyzed is never
// compared and a strict tie flags neither side.
func Compare(key MetricKey, a, b float64) (Flag, Flag) {
	if key == MetricGames {
		return FlagNone, FlagNone
	}
	if LowerIsBetter(key) {
		// Swapped operands: a wins when b is the larger value.
		fa, fb := Higher(b, a)
		return fa, fb
	}
	return Higher(a, b)
}

// Higher flags a and b so that the larger value is better.
func Higher(a, b float64) (Flag, Flag) {
	switch {
	case a > b:
		return FlagBetter, FlagWorse
	case b > a:
		return FlagWorse, FlagBetter
	default:
		return FlagNone, FlagNone
	}
}
