package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanScenario(t *testing.T) {
	raw := mustParse(t, sampleCSV)
	cleaned := newTestCleaner().Clean(raw)

	require.Equal(t, 3, cleaned.Len())
	assert.Equal(t, "Accent", cleaned.Records[0].Values[0])
	assert.Equal(t, "Land Cruiser", cleaned.Records[1].Values[0])
	assert.Equal(t, "Sonata", cleaned.Records[2].Values[0])

	m := Summarize(raw, cleaned)
	assert.Equal(t, 5, m.Raw)
	assert.Equal(t, 3, m.Cleaned)
	assert.Equal(t, 2, m.Removed)
}

func TestCleanDropsNonPositiveAndMissingPrice(t *testing.T) {
	raw := datasetOf(
		record(2015, "Kia", 0),
		record(2016, "Kia", -5),
		record(2017, "Kia", math.NaN()),
		record(2018, "Kia", 1),
	)

	cleaned := newTestCleaner().Clean(raw)
	require.Equal(t, 1, cleaned.Len())
	for _, r := range cleaned.Records {
		assert.Greater(t, r.Price, 0.0)
	}
}

func TestCleanKeepsRowsDifferingInAnyField(t *testing.T) {
	a := record(2018, "Kia", 100)
	b := record(2018, "Kia", 100)
	b.Options = "Full"

	cleaned := newTestCleaner().Clean(datasetOf(a, b, a))
	assert.Equal(t, 2, cleaned.Len())
}

func TestCleanKeepsFullFloatPrecision(t *testing.T) {
	raw := mustParse(t, `Type,Make,Gear_Type,Options,Year,Engine_Size,Mileage,Price
Rio,Kia,Automatic,Standard,2019,1.6000001,1000,28000.5
Rio,Kia,Automatic,Standard,2019,1.6000002,1000,28000.5
Rio,Kia,Automatic,Standard,2019,1.6,1000,1e-7
`)
	cleaned := newTestCleaner().Clean(raw)
	require.Equal(t, 3, cleaned.Len())

	assert.Equal(t, "1.6000001", cleaned.Records[0].Values[5])
	assert.Equal(t, "1.6000002", cleaned.Records[1].Values[5])
	assert.Equal(t, "28000.5", cleaned.Records[0].Values[7])
	assert.Equal(t, "0.0000001", cleaned.Records[2].Values[7])
}

func TestCleanTreatsEqualFloatSpellingsAsDuplicates(t *testing.T) {
	raw := mustParse(t, `Type,Make,Gear_Type,Options,Year,Engine_Size,Mileage,Price
Rio,Kia,Automatic,Standard,2019,2.50,1000,28000.5
Rio,Kia,Automatic,Standard,2019,2.5,1000,28000.5
`)
	cleaned := newTestCleaner().Clean(raw)
	require.Equal(t, 1, cleaned.Len())
	assert.Equal(t, "2.5", cleaned.Records[0].Values[5])
}

func TestCleanComparesPassThroughColumns(t *testing.T) {
	raw := mustParse(t, `Type,Make,Gear_Type,Options,Year,Engine_Size,Mileage,Price
Accent,Hyundai,Automatic,Standard,2015,1.6,120000,28000
Elantra,Hyundai,Automatic,Standard,2015,1.6,120000,28000
`)
	assert.Equal(t, 2, newTestCleaner().Clean(raw).Len())
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	raw := mustParse(t, sampleCSV)
	before := make([]string, raw.Len())
	for i, r := range raw.Records {
		before[i] = rowKey(r)
	}

	_ = newTestCleaner().Clean(raw)

	require.Equal(t, 5, raw.Len())
	for i, r := range raw.Records {
		assert.Equal(t, before[i], rowKey(r))
	}
}

func TestCleanIsIdempotentAndDeterministic(t *testing.T) {
	raw := mustParse(t, sampleCSV)
	c := newTestCleaner()

	once := c.Clean(raw)
	twice := c.Clean(once)
	again := c.Clean(raw)

	assert.Equal(t, once.Records, twice.Records)
	assert.Equal(t, once.Records, again.Records)
}

func TestCleanLeavesNoDuplicates(t *testing.T) {
	var records = []struct {
		year  int
		make  string
		price float64
	}{
		{2015, "Kia", 10}, {2015, "Kia", 10}, {2016, "Kia", 10},
		{2015, "Ford", 10}, {2016, "Kia", 10}, {2015, "Kia", 0},
	}
	raw := datasetOf()
	for _, r := range records {
		raw.Records = append(raw.Records, record(r.year, r.make, r.price))
	}

	cleaned := newTestCleaner().Clean(raw)
	seen := make(map[string]bool)
	for _, r := range cleaned.Records {
		key := rowKey(r)
		assert.False(t, seen[key], "duplicate row survived: %+v", r)
		seen[key] = true
	}
	assert.Equal(t, 3, cleaned.Len())
}

func TestRowKeyIsUnambiguous(t *testing.T) {
	a := record(2015, "Kia", 1)
	b := a
	a.Values = []string{"ab", "c"}
	b.Values = []string{"a", "bc"}
	assert.NotEqual(t, rowKey(a), rowKey(b))
}
