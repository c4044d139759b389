package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionAnyMake(t *testing.T) {
	assert.True(t, Selection{}.AnyMake())
	assert.True(t, Selection{Make: AllMakes}.AnyMake())
	assert.False(t, Selection{Make: "Toyota"}.AnyMake())

	assert.Equal(t, AllMakes, Selection{}.MakeLabel())
	assert.Equal(t, "Kia", Selection{Make: "Kia"}.MakeLabel())
}

func TestDatasetHelpers(t *testing.T) {
	var nilSet *Dataset
	assert.Equal(t, 0, nilSet.Len())
	assert.True(t, nilSet.Empty())

	ds := &Dataset{
		Columns: []Column{{Name: ColMake, Type: TypeString}, {Name: ColPrice, Type: TypeInt}},
		Records: []Record{{Make: "Kia", Price: 10}},
	}
	assert.Equal(t, 1, ds.ColumnIndex(ColPrice))
	assert.Equal(t, -1, ds.ColumnIndex("Color"))

	derived := ds.Derive(4)
	assert.Equal(t, ds.Columns, derived.Columns)
	assert.True(t, derived.Empty())
}

func TestColumnSummaryJSONNullsNaN(t *testing.T) {
	summary := ColumnSummary{Column: ColPrice, Count: 1, Mean: 5, Std: math.NaN(), Min: 5, Q25: 5, Median: 5, Q75: 5, Max: 5}

	raw, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded["std"])
	assert.Equal(t, 5.0, decoded["mean"])
	assert.Equal(t, 5.0, decoded["50%"])
}

func TestColumnTypeNumeric(t *testing.T) {
	assert.True(t, TypeInt.Numeric())
	assert.True(t, TypeFloat.Numeric())
	assert.False(t, TypeString.Numeric())
	assert.False(t, TypeBool.Numeric())
}
