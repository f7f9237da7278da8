package scoring

// Band is a coarse label for a health score.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
	BandBad       Band = "bad"
)

// Lower bounds (inclusive) of each band.
const (
	ExcellentMinScore = 80.0
	GoodMinScore      = 60.0
	FairMinScore      = 40.0
	PoorMinScore      = 20.0
)

func BandFor(score float64) Band {
	switch {
	case score >= ExcellentMinScore:
		return BandExcellent
	case score >= GoodMinScore:
		return BandGood
	case score >= FairMinScore:
		return BandFair
	case score >= PoorMinScore:
		return BandPoor
	default:
		return BandBad
	}
}
