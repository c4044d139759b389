// Package report exports the dashboard content as an Excel workbook and a
// Markdown insights report.
package report

import (
	"saudicars/dataset"
	"saudicars/models"
)

// Overview is everything the exports need, computed once from the cleaned
// and filtered datasets.
type Overview struct {
	Metrics   models.Metrics
	Preview   *models.Dataset
	Describe  []models.ColumnSummary
	Types     []models.Column
	Selection models.Selection
	Filtered  *models.Dataset
	TopMakes  []models.Count
	YearMin   int
	YearMax   int
}

// NewOverview gathers the overview page content plus the current filter.
func NewOverview(raw, cleaned *models.Dataset, sel models.Selection, previewRows, topN int) Overview {
	filtered := dataset.Filter(cleaned, sel)
	ymin, ymax, _ := dataset.YearBounds(cleaned)
	return Overview{
		Metrics:   dataset.Summarize(raw, cleaned),
		Preview:   dataset.Head(cleaned, previewRows),
		Describe:  dataset.Describe(cleaned),
		Types:     dataset.ColumnTypes(cleaned),
		Selection: sel,
		Filtered:  filtered,
		TopMakes:  dataset.TopN(dataset.ValueCounts(filtered, models.ColMake), topN),
		YearMin:   ymin,
		YearMax:   ymax,
	}
}
