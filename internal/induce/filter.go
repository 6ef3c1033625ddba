package induce

import (
	"github.com/projectdiscovery/regulator/internal/dank"
)

// MaxWordLength bounds counting and enumeration in the cardinality oracle.
const MaxWordLength = 256

// Evaluate applies the cardinality ratio test to a candidate pattern backed
// by evidence observed hosts. It returns the verdict together with the
// number of distinct strings the pattern matches, so callers can record the
// cardinality without compiling the pattern twice.
//
// A pattern is acceptable when its cardinality stays below threshold, or
// when cardinality divided by evidence stays below maxRatio. Patterns that
// fail to compile are rejected.
func Evaluate(pattern string, evidence, threshold int, maxRatio float64) (bool, int64) {
	enc, err := dank.NewEncoder(pattern, MaxWordLength)
	if err != nil {
		return false, 0
	}
	count := enc.NumWords(1, MaxWordLength)
	if count < int64(threshold) {
		return true, count
	}
	if evidence <= 0 {
		return false, count
	}
	return float64(count)/float64(evidence) < maxRatio, count
}

// Acceptable is Evaluate without the cardinality.
func Acceptable(pattern string, evidence, threshold int, maxRatio float64) bool {
	ok, _ := Evaluate(pattern, evidence, threshold, maxRatio)
	return ok
}
