// Package report aggregates computed study results into portfolio-level
// figures for the overview dashboard. It works on plain float64 snapshots:
// these are descriptive statistics, not money of record, so the decimal
// values are converted once at this boundary.
package report

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
)

// StudySnapshot is one study's contribution to the portfolio summary.
type StudySnapshot struct {
	Study     string
	ROI       float64
	Profit    float64
	Invested  float64
	Viability string
}

// Summary is the portfolio overview of one user's studies.
type Summary struct {
	StudyCount    int            `json:"study_count"`
	ByViability   map[string]int `json:"by_viability"`
	TotalProfit   float64        `json:"total_profit"`
	TotalInvested float64        `json:"total_invested"`
	MeanROI       float64        `json:"mean_roi"`
	MedianROI     float64        `json:"median_roi"`
	StdDevROI     float64        `json:"stddev_roi"`
	MinROI        float64        `json:"min_roi"`
	MaxROI        float64        `json:"max_roi"`
}

var viabilityValues = []feasibility.Viability{
	feasibility.Viable,
	feasibility.Attention,
	feasibility.Unviable,
	feasibility.Unknown,
}

// BuildSummary computes the portfolio summary over the given snapshots.
func BuildSummary(snapshots []StudySnapshot) Summary {
	summary := Summary{
		StudyCount:  len(snapshots),
		ByViability: make(map[string]int, len(viabilityValues)),
	}
	for _, v := range viabilityValues {
		summary.ByViability[string(v)] = 0
	}
	if len(snapshots) == 0 {
		return summary
	}

	df := dataframe.LoadStructs(snapshots)
	for _, v := range viabilityValues {
		filtered := df.Filter(dataframe.F{
			Colname:    "Viability",
			Comparator: series.Eq,
			Comparando: string(v),
		})
		summary.ByViability[string(v)] = filtered.Nrow()
	}

	rois := df.Col("ROI").Float()
	for _, p := range df.Col("Profit").Float() {
		summary.TotalProfit += p
	}
	for _, inv := range df.Col("Invested").Float() {
		summary.TotalInvested += inv
	}

	sorted := append([]float64(nil), rois...)
	sort.Float64s(sorted)

	summary.MeanROI = stat.Mean(rois, nil)
	summary.MedianROI = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(rois) > 1 {
		summary.StdDevROI = stat.StdDev(rois, nil)
	}
	summary.MinROI = sorted[0]
	summary.MaxROI = sorted[len(sorted)-1]
	return summary
}
