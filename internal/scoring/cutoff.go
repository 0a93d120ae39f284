package scoring

// severityAtMost returns the label of the first cutoff whose bound is >= v,
// scanning in ascending order. If nothing matches the last label applies as
// the open-ended top bucket.
func severityAtMost(v float64, table []Cutoff) string {
	if len(table) == 0 {
		return ""
	}
	for _, c := range table {
		if v <= c.Upper {
			return c.Label
		}
	}
	return table[len(table)-1].Label
}

// severityBelow is the strict-bound variant used for SCL-90 averages, where
// an average of exactly 1.00 already falls into the next bucket.
func severityBelow(v float64, table []Cutoff) string {
	if len(table) == 0 {
		return ""
	}
	for _, c := range table {
		if v < c.Upper {
			return c.Label
		}
	}
	return table[len(table)-1].Label
}
