package models

import (
	"encoding/json"
	"math"
)

// Column names the dashboard relies on. Other columns in the source are
// carried through in Record.Values untouched.
const (
	ColPrice      = "Price"
	ColYear       = "Year"
	ColMake       = "Make"
	ColMileage    = "Mileage"
	ColEngineSize = "Engine_Size"
	ColGearType   = "Gear_Type"
	ColOptions    = "Options"
)

// RequiredColumns must be present in every source file.
var RequiredColumns = []string{ColPrice, ColYear, ColMake, ColMileage, ColEngineSize, ColGearType, ColOptions}

// AllMakes is the make selection that disables the make filter.
const AllMakes = "All"

// ColumnType is the inferred type of a source column.
type ColumnType string

const (
	TypeString ColumnType = "string"
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeBool   ColumnType = "bool"
)

// Numeric reports whether the column holds numbers.
func (t ColumnType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column describes one column of a dataset.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Record is one car listing. Values holds the whole row in column order as
// normalized by type inference; it is the basis for full-row equality.
type Record struct {
	Price      float64
	Year       int
	Make       string
	Mileage    float64
	EngineSize float64
	GearType   string
	Options    string
	Values     []string
}

// Dataset is an ordered table of records. Datasets are treated as
// read-only once built.
type Dataset struct {
	Columns []Column
	Records []Record
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// ColumnIndex returns the position of name in Columns, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Derive returns an empty dataset with the same columns.
func (d *Dataset) Derive(capacity int) *Dataset {
	return &Dataset{
		Columns: d.Columns,
		Records: make([]Record, 0, capacity),
	}
}

// Selection is the user's filter choice.
type Selection struct {
	YearMin int    `json:"year_min"`
	YearMax int    `json:"year_max"`
	Make    string `json:"make"`
}

// AnyMake reports whether the selection disables the make filter.
func (s Selection) AnyMake() bool {
	return s.Make == "" || s.Make == AllMakes
}

// MakeLabel returns the make for display, using the sentinel when unset.
func (s Selection) MakeLabel() string {
	if s.AnyMake() {
		return AllMakes
	}
	return s.Make
}

// Metrics are the row counts shown on the overview page.
type Metrics struct {
	Raw     int `json:"raw"`
	Cleaned int `json:"cleaned"`
	Removed int `json:"removed"`
}

// ColumnSummary is one row of the descriptive statistics table.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Count is a categorical value and how often it occurs.
type Count struct {
	Value string `json:"value"`
	N     int    `json:"n"`
}

// MarshalJSON writes NaN statistics (e.g. std of a single value) as null.
func (c ColumnSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Column string   `json:"column"`
		Count  int      `json:"count"`
		Mean   *float64 `json:"mean"`
		Std    *float64 `json:"std"`
		Min    *float64 `json:"min"`
		Q25    *float64 `json:"25%"`
		Median *float64 `json:"50%"`
		Q75    *float64 `json:"75%"`
		Max    *float64 `json:"max"`
	}{
		Column: c.Column,
		Count:  c.Count,
		Mean:   Nullable(c.Mean),
		Std:    Nullable(c.Std),
		Min:    Nullable(c.Min),
		Q25:    Nullable(c.Q25),
		Median: Nullable(c.Median),
		Q75:    Nullable(c.Q75),
		Max:    Nullable(c.Max),
	})
}

// Nullable maps NaN and infinities to nil so the value survives JSON encoding.
func Nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
