package dataset

import (
	"sort"

	"saudicars/models"
)

// Filter keeps the records whose Year lies in [YearMin, YearMax] and, unless
// the selection covers all makes, whose Make equals the selected one. A make
// that does not occur simply produces an empty dataset.
func Filter(cleaned *models.Dataset, sel models.Selection) *models.Dataset {
	out := cleaned.Derive(0)
	for _, r := range cleaned.Records {
		if r.Year < sel.YearMin || r.Year > sel.YearMax {
			continue
		}
		if !sel.AnyMake() && r.Make != sel.Make {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}

// YearBounds returns the smallest and largest Year; ok is false for an
// empty dataset.
func YearBounds(ds *models.Dataset) (min, max int, ok bool) {
	if ds.Empty() {
		return 0, 0, false
	}
	min, max = ds.Records[0].Year, ds.Records[0].Year
	for _, r := range ds.Records[1:] {
		if r.Year < min {
			min = r.Year
		}
		if r.Year > max {
			max = r.Year
		}
	}
	return min, max, true
}

// Makes returns the distinct makes in ascending order.
func Makes(ds *models.Dataset) []string {
	seen := make(map[string]struct{})
	var makes []string
	for _, r := range ds.Records {
		if _, ok := seen[r.Make]; ok {
			continue
		}
		seen[r.Make] = struct{}{}
		makes = append(makes, r.Make)
	}
	sort.Strings(makes)
	return makes
}

// MakeOptions is the make selector content: the "All" sentinel followed by
// every observed make.
func MakeOptions(ds *models.Dataset) []string {
	return append([]string{models.AllMakes}, Makes(ds)...)
}

// DefaultSelection is the initial filter: from preferredMin to the latest
// year, all makes. A preferredMin outside the observed range is reset to
// the earliest year.
func DefaultSelection(ds *models.Dataset, preferredMin int) models.Selection {
	min, max, ok := YearBounds(ds)
	if !ok {
		return models.Selection{Make: models.AllMakes}
	}

	from := preferredMin
	if from < min || from > max {
		from = min
	}
	return models.Selection{YearMin: from, YearMax: max, Make: models.AllMakes}
}
