package profiling

import (
	"sheetviz/domain/tabular"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// numericSummary holds the display statistics of a numeric column.
type numericSummary struct {
	Min    float64
	Max    float64
	Avg    float64
	Median float64
	StdDev *float64 // needs at least two values
}

// summarize computes summary statistics over a non-empty slice.
func summarize(data []float64) numericSummary {
	summary := numericSummary{}
	if len(data) == 0 {
		return summary
	}

	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Median, _ = stats.Median(data)

	mean, _ := stats.Mean(data)
	summary.Avg = roundTo(mean, 2)

	if len(data) >= 2 {
		sd := roundTo(stat.StdDev(data, nil), 4)
		summary.StdDev = &sd
	}
	return summary
}

func roundTo(v float64, places int) float64 {
	rounded, err := stats.Round(v, places)
	if err != nil {
		return v
	}
	return rounded
}

func applySummary(col *tabular.ColumnProfile, s numericSummary) {
	col.Min = &s.Min
	col.Max = &s.Max
	col.Avg = &s.Avg
	col.Median = &s.Median
	col.StdDev = s.StdDev
}
