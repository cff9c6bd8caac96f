package schedule

// CompliancePercent returns the fraction of entries marked taken as a
// percentage in [0,100]. An empty list yields 0 rather than dividing by zero.
func CompliancePercent(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}

	taken := 0
	for _, e := range entries {
		if e.Taken {
			taken++
		}
	}

	return float64(taken) / float64(len(entries)) * 100
}

// Trend produces one InsightPoint per day of the window, in window order.
func Trend(window []Day, store *Store) []InsightPoint {
	points := make([]InsightPoint, 0, len(window))
	for _, day := range window {
		points = append(points, InsightPoint{
			Date:       day.Date,
			Percentage: CompliancePercent(store.EntriesFor(day.Date)),
		})
	}
	return points
}

// AverageCompliance is the arithmetic mean of the trend percentages.
// An empty trend averages to 0.
func AverageCompliance(trend []InsightPoint) float64 {
	if len(trend) == 0 {
		return 0
	}

	var sum float64
	for _, p := range trend {
		sum += p.Percentage
	}
	return sum / float64(len(trend))
}
