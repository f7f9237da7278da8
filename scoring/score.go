// Package scoring computes a product health score from its nutrient profile
// and additive list.
//
// A product starts at BaselineScore. Sugar, salt and saturated fat above
// their medium or high thresholds subtract a fixed penalty, protein and fiber
// above theirs add a bonus, and every additive subtracts AdditivePenalty.
// The result is clamped to [MinScore, MaxScore] and rounded to one decimal.
// With the current whole-number weights the score is always integral; the
// rounding only takes effect once a fractional weight is introduced.
// All thresholds are grams per 100g/100ml and compared with ">".
package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	BaselineScore = 100.0
	MinScore      = 0.0
	MaxScore      = 100.0

	SugarHighThreshold   = 22.5
	SugarMediumThreshold = 5.0
	SugarHighPenalty     = 30.0
	SugarMediumPenalty   = 15.0

	SaltHighThreshold   = 1.5
	SaltMediumThreshold = 0.3
	SaltHighPenalty     = 20.0
	SaltMediumPenalty   = 10.0

	SaturatedFatHighThreshold   = 5.0
	SaturatedFatMediumThreshold = 1.5
	SaturatedFatHighPenalty     = 20.0
	SaturatedFatMediumPenalty   = 10.0

	ProteinHighThreshold   = 10.0
	ProteinMediumThreshold = 5.0
	ProteinHighBonus       = 10.0
	ProteinMediumBonus     = 5.0

	FiberHighThreshold   = 6.0
	FiberMediumThreshold = 3.0
	FiberHighBonus       = 10.0
	FiberMediumBonus     = 5.0

	// AdditivePenalty is subtracted once per listed additive, whatever its code.
	AdditivePenalty = 5.0
)

// Nutrients is the part of a nutrition profile the score depends on.
// Absent values are zero.
type Nutrients struct {
	Sugar        float64
	Salt         float64
	SaturatedFat float64
	Protein      float64
	Fiber        float64
}

// Result is a computed score and its band.
type Result struct {
	Score float64
	Band  Band
}

// Score returns the health score for the given nutrients and additives.
func Score(n Nutrients, additives []string) float64 {
	return Evaluate(n, additives).Score
}

// Evaluate returns the health score together with its band.
func Evaluate(n Nutrients, additives []string) Result {
	score := BaselineScore

	score -= tier(n.Sugar, SugarHighThreshold, SugarMediumThreshold, SugarHighPenalty, SugarMediumPenalty)
	score -= tier(n.Salt, SaltHighThreshold, SaltMediumThreshold, SaltHighPenalty, SaltMediumPenalty)
	score -= tier(n.SaturatedFat, SaturatedFatHighThreshold, SaturatedFatMediumThreshold, SaturatedFatHighPenalty, SaturatedFatMediumPenalty)

	score += tier(n.Protein, ProteinHighThreshold, ProteinMediumThreshold, ProteinHighBonus, ProteinMediumBonus)
	score += tier(n.Fiber, FiberHighThreshold, FiberMediumThreshold, FiberHighBonus, FiberMediumBonus)

	score -= float64(len(additives)) * AdditivePenalty

	score = roundScore(math.Max(MinScore, math.Min(MaxScore, score)))

	return Result{Score: score, Band: BandFor(score)}
}

// roundScore rounds half away from zero to one decimal place.
func roundScore(score float64) float64 {
	return decimal.NewFromFloat(score).Round(1).InexactFloat64()
}

// tier returns the weight of the band v falls into. Negative and NaN amounts
// count as zero.
func tier(v, high, medium, highWeight, mediumWeight float64) float64 {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	switch {
	case v > high:
		return highWeight
	case v > medium:
		return mediumWeight
	default:
		return 0
	}
}
