package trade

// DefaultFairnessThreshold is the percent difference up to which a trade is
// still considered fair.
const DefaultFairnessThreshold = 20.0

// Fairness verdicts.
const (
	Fair   = "fair"
	Unfair = "unfair"
)

// CalculateFairness flags lopsided trades. It compares the two values'
// difference against the threshold percent of the larger value; a difference
// exactly at the threshold still counts as fair. The verdict is advisory
// only and never blocks execution. The result is symmetric in the two
// values, and equal values are always fair.
func CalculateFairness(value1, value2 int, thresholdPercent ...float64) string {
	threshold := DefaultFairnessThreshold
	if len(thresholdPercent) > 0 {
		threshold = thresholdPercent[0]
	}

	if value1 == value2 {
		return Fair
	}

	larger := value1
	diff := value1 - value2
	if value2 > value1 {
		larger = value2
		diff = value2 - value1
	}

	if float64(diff)/float64(larger)*100 <= threshold {
		return Fair
	}
	return Unfair
}
