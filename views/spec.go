package views

import (
	"encoding/json"
	"fmt"
	"math"

	"saudicars/dataset"
	"saudicars/locale"
	"saudicars/models"
)

// Point is one (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Group is one category's values in a grouped boxplot.
type Group struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartSpec is the data and labelling of one chart, independent of how it
// is drawn.
type ChartSpec struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`

	// histogram and boxplot
	Values  []float64 `json:"values,omitempty"`
	Bins    int       `json:"bins,omitempty"`
	Density []Point   `json:"density,omitempty"`

	// count and top
	Bars       []models.Count `json:"bars,omitempty"`
	Horizontal bool           `json:"horizontal,omitempty"`

	Points []Point `json:"points,omitempty"`
	Groups []Group `json:"groups,omitempty"`

	// correlation
	Labels []string    `json:"labels,omitempty"`
	Matrix [][]float64 `json:"-"`
}

// MarshalJSON writes undefined correlations (constant columns) as null.
func (c ChartSpec) MarshalJSON() ([]byte, error) {
	type alias ChartSpec
	out := struct {
		alias
		Matrix [][]*float64 `json:"matrix,omitempty"`
	}{alias: alias(c)}

	for _, row := range c.Matrix {
		cells := make([]*float64, len(row))
		for j, v := range row {
			cells[j] = models.Nullable(v)
		}
		out.Matrix = append(out.Matrix, cells)
	}
	return json.Marshal(out)
}

// Build turns a view and the filtered dataset into a chart spec. An empty
// dataset yields ErrNoData before any statistic is computed.
func Build(v View, filtered *models.Dataset, s *locale.Strings) (*ChartSpec, error) {
	if filtered.Empty() {
		return nil, ErrNoData
	}

	spec := &ChartSpec{Kind: v.Kind}
	switch v.Kind {
	case KindHistogram:
		values := dataset.DropNaN(dataset.NumericColumn(filtered, v.Column))
		if len(values) == 0 {
			return nil, ErrNoData
		}
		spec.Title = fmt.Sprintf(s.HistTitleFmt, v.Make)
		spec.XLabel = v.Column
		spec.YLabel = s.LabelCount
		spec.Values = values
		spec.Bins = BinCount(values)
		spec.Density = ScaledKDE(values, spec.Bins, 200)

	case KindBoxplot:
		values := dataset.DropNaN(dataset.NumericColumn(filtered, v.Column))
		if len(values) == 0 {
			return nil, ErrNoData
		}
		spec.Title = fmt.Sprintf(s.BoxTitleFmt, v.Make)
		spec.XLabel = v.Column
		spec.Values = values
		spec.Horizontal = true

	case KindCount:
		spec.Title = fmt.Sprintf(s.CountTitleFmt, v.Category)
		spec.XLabel = v.Category
		spec.YLabel = s.LabelCount
		spec.Bars = countsInOrderOfAppearance(dataset.CategoryColumn(filtered, v.Category))

	case KindTop:
		n := v.TopN
		if n <= 0 {
			n = 10
		}
		spec.Title = fmt.Sprintf(s.TopTitleFmt, n)
		spec.XLabel = s.LabelCount
		spec.YLabel = s.LabelMake
		spec.Bars = dataset.TopN(dataset.ValueCounts(filtered, models.ColMake), n)
		spec.Horizontal = true

	case KindScatter:
		xs := dataset.NumericColumn(filtered, v.XVar)
		if xs == nil {
			return nil, fmt.Errorf("unknown x variable %q", v.XVar)
		}
		ys := dataset.NumericColumn(filtered, models.ColPrice)
		for i := range xs {
			if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
				continue
			}
			spec.Points = append(spec.Points, Point{X: xs[i], Y: ys[i]})
		}
		if len(spec.Points) == 0 {
			return nil, ErrNoData
		}
		spec.Title = fmt.Sprintf(s.ScatterTitleFmt, v.XVar)
		spec.XLabel = v.XVar
		spec.YLabel = s.LabelPrice

	case KindGroupedBoxplot:
		cats := dataset.CategoryColumn(filtered, v.Category)
		if cats == nil {
			return nil, fmt.Errorf("unknown category %q", v.Category)
		}
		spec.Groups = groupValues(cats, dataset.NumericColumn(filtered, models.ColPrice))
		if len(spec.Groups) == 0 {
			return nil, ErrNoData
		}
		spec.Title = fmt.Sprintf(s.GroupedTitleFmt, v.Category)
		spec.XLabel = s.LabelPrice
		spec.YLabel = v.Category
		spec.Horizontal = true

	case KindCorrelation:
		matrix, err := dataset.Correlation(filtered, dataset.CorrelationColumns)
		if err != nil {
			return nil, err
		}
		spec.Title = s.CorrTitle
		spec.Labels = append([]string(nil), dataset.CorrelationColumns...)
		spec.Matrix = matrix

	default:
		return nil, fmt.Errorf("unknown chart kind %q", v.Kind)
	}
	return spec, nil
}

func countsInOrderOfAppearance(values []string) []models.Count {
	index := make(map[string]int)
	var out []models.Count
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			i = len(out)
			index[v] = i
			out = append(out, models.Count{Value: v})
		}
		out[i].N++
	}
	return out
}

func groupValues(cats []string, values []float64) []Group {
	index := make(map[string]int)
	var out []Group
	for i, c := range cats {
		if math.IsNaN(values[i]) {
			continue
		}
		g, ok := index[c]
		if !ok {
			g = len(out)
			index[c] = g
			out = append(out, Group{Name: c})
		}
		out[g].Values = append(out[g].Values, values[i])
	}
	return out
}
