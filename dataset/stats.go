package dataset

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"saudicars/models"
)

// ErrEmptyDataset is returned by computations undefined on zero rows.
var ErrEmptyDataset = errors.New("dataset is empty")

// CorrelationColumns is the fixed numeric subset of the correlation heatmap.
var CorrelationColumns = []string{models.ColPrice, models.ColYear, models.ColMileage, models.ColEngineSize}

// Summarize computes the overview row counts.
func Summarize(raw, cleaned *models.Dataset) models.Metrics {
	return models.Metrics{
		Raw:     raw.Len(),
		Cleaned: cleaned.Len(),
		Removed: raw.Len() - cleaned.Len(),
	}
}

// Head returns the first n rows.
func Head(ds *models.Dataset, n int) *models.Dataset {
	if n > ds.Len() {
		n = ds.Len()
	}
	if n < 0 {
		n = 0
	}
	return &models.Dataset{Columns: ds.Columns, Records: ds.Records[:n:n]}
}

// ColumnTypes lists each column with its inferred type.
func ColumnTypes(ds *models.Dataset) []models.Column {
	out := make([]models.Column, len(ds.Columns))
	copy(out, ds.Columns)
	return out
}

// NumericColumn returns the values of a numeric column in row order, NaN
// where missing. Unknown columns give nil.
func NumericColumn(ds *models.Dataset, name string) []float64 {
	var pick func(r models.Record) float64
	switch name {
	case models.ColPrice:
		pick = func(r models.Record) float64 { return r.Price }
	case models.ColYear:
		pick = func(r models.Record) float64 { return float64(r.Year) }
	case models.ColMileage:
		pick = func(r models.Record) float64 { return r.Mileage }
	case models.ColEngineSize:
		pick = func(r models.Record) float64 { return r.EngineSize }
	default:
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil
		}
		pick = func(r models.Record) float64 {
			if idx >= len(r.Values) {
				return math.NaN()
			}
			f, err := strconv.ParseFloat(r.Values[idx], 64)
			if err != nil {
				return math.NaN()
			}
			return f
		}
	}

	out := make([]float64, len(ds.Records))
	for i, r := range ds.Records {
		out[i] = pick(r)
	}
	return out
}

// CategoryColumn returns the values of a categorical column in row order.
func CategoryColumn(ds *models.Dataset, name string) []string {
	var pick func(r models.Record) string
	switch name {
	case models.ColMake:
		pick = func(r models.Record) string { return r.Make }
	case models.ColGearType:
		pick = func(r models.Record) string { return r.GearType }
	case models.ColOptions:
		pick = func(r models.Record) string { return r.Options }
	default:
		idx := ds.ColumnIndex(name)
		if idx < 0 {
			return nil
		}
		pick = func(r models.Record) string {
			if idx >= len(r.Values) {
				return ""
			}
			return r.Values[idx]
		}
	}

	out := make([]string, len(ds.Records))
	for i, r := range ds.Records {
		out[i] = pick(r)
	}
	return out
}

// DropNaN returns the finite values of xs.
func DropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Describe summarizes every numeric column: count, mean, sample standard
// deviation, min, quartiles and max, ignoring missing values.
func Describe(ds *models.Dataset) []models.ColumnSummary {
	var out []models.ColumnSummary
	for _, col := range ds.Columns {
		if !col.Type.Numeric() {
			continue
		}
		out = append(out, describeColumn(col.Name, DropNaN(NumericColumn(ds, col.Name))))
	}
	return out
}

func describeColumn(name string, xs []float64) models.ColumnSummary {
	s := models.ColumnSummary{Column: name, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	} else {
		s.Std = math.NaN()
	}
	s.Min = sorted[0]
	s.Q25 = Quantile(sorted, 0.25)
	s.Median = Quantile(sorted, 0.5)
	s.Q75 = Quantile(sorted, 0.75)
	s.Max = sorted[len(sorted)-1]
	return s
}

// Quantile returns the p-quantile of sorted data by linear interpolation
// between closest ranks, the convention of common dataframe libraries.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ValueCounts counts each distinct value of a categorical column, most
// frequent first; ties are ordered by value.
func ValueCounts(ds *models.Dataset, column string) []models.Count {
	counts := make(map[string]int)
	for _, v := range CategoryColumn(ds, column) {
		counts[v]++
	}

	out := make([]models.Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, models.Count{Value: v, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// TopN returns at most n leading entries of counts.
func TopN(counts []models.Count, n int) []models.Count {
	if n < len(counts) {
		return counts[:n]
	}
	return counts
}

// Correlation computes the pairwise Pearson correlation matrix of columns,
// using for each pair only rows where both values are present.
func Correlation(ds *models.Dataset, columns []string) ([][]float64, error) {
	if ds.Empty() {
		return nil, ErrEmptyDataset
	}

	data := make([][]float64, len(columns))
	for i, c := range columns {
		data[i] = NumericColumn(ds, c)
		if data[i] == nil {
			return nil, errors.New("unknown column " + strconv.Quote(c))
		}
	}

	matrix := make([][]float64, len(columns))
	for i := range columns {
		matrix[i] = make([]float64, len(columns))
	}
	for i := range columns {
		for j := i; j < len(columns); j++ {
			r := pairwiseCorrelation(data[i], data[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return matrix, nil
}

func pairwiseCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
