package reconcile

import (
	"math"
	"regexp"
	"strconv"
)

// numericPattern matches an optionally signed decimal with an optional exponent.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// isNumericLike reports whether v takes part in numeric comparison. The empty
// string qualifies: every part of the numeric pattern is optional.
func isNumericLike(v string) bool {
	return v == "" || numericPattern.MatchString(v)
}

// Classify picks the comparison mode for a value pair.
func Classify(source, target string) Mode {
	if isNumericLike(source) && isNumericLike(target) {
		return Numeric
	}
	return Textual
}

// Outcome is one unequal (key, column) pair.
type Outcome struct {
	Key    CompositeKey
	Column int
	Source string
	Target string
	Mode   Mode
	// Diff is source minus target; meaningful only when HasDiff is set.
	Diff    float64
	HasDiff bool
}

// CompareValues compares a single pair and returns the outcome and whether the
// values are equal under tolerance.
func CompareValues(source, target string, tolerance float64) (Outcome, bool) {
	out := Outcome{Source: source, Target: target, Mode: Classify(source, target)}

	if out.Mode == Textual {
		return out, source == target
	}

	// Numeric with an empty side: no diff is computed.
	if source == "" || target == "" {
		return out, source == target
	}

	sv, serr := strconv.ParseFloat(source, 64)
	tv, terr := strconv.ParseFloat(target, 64)
	if serr != nil || terr != nil {
		// Out-of-range literals fall back to text equality.
		out.Mode = Textual
		return out, source == target
	}

	out.Diff = sv - tv
	out.HasDiff = true
	return out, math.Abs(out.Diff) <= tolerance
}

// Compare checks every non-key column of every key present in both sets and
// returns the unequal pairs. Keys are visited in the source's first-seen order.
func Compare(source, target *IngestedSet, keys KeySpec, tolerance float64) []Outcome {
	var outcomes []Outcome
	for _, key := range source.Keys() {
		te, ok := target.Get(key)
		if !ok {
			continue
		}
		se, _ := source.Get(key)

		width := max(len(se.Record), len(te.Record))
		for pos := 1; pos <= width; pos++ {
			if keys.Contains(pos) {
				continue
			}
			out, equal := CompareValues(se.Record.Field(pos), te.Record.Field(pos), tolerance)
			if equal {
				continue
			}
			out.Key = key
			out.Column = pos
			outcomes = append(outcomes, out)
		}
	}
	return outcomes
}
