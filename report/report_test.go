package report

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"saudicars/dataset"
	"saudicars/locale"
	"saudicars/models"
)

const carsCSV = `Type,Make,Gear_Type,Options,Year,Engine_Size,Mileage,Price
Accent,Hyundai,Automatic,Standard,2015,1.6,120000,28000
Land Cruiser,Toyota,Automatic,Full,2018,4.6,80000,185000
Land Cruiser,Toyota,Automatic,Full,2018,4.6,80000,185000
Camry,Toyota,Automatic,Semi Full,2020,2.5,35000,0
Sonata,Hyundai,Manual,Standard,2022,2.4,5000,95000
Camry,Toyota,Automatic,Standard,2021,2.5,15000,99000
`

func overview(t *testing.T, sel models.Selection) Overview {
	t.Helper()
	raw, err := dataset.Parse(strings.NewReader(carsCSV))
	require.NoError(t, err)
	cleaned := dataset.NewCleaner(zap.NewNop()).Clean(raw)
	return NewOverview(raw, cleaned, sel, 2, 10)
}

func TestNewOverview(t *testing.T) {
	ov := overview(t, models.Selection{YearMin: 2018, YearMax: 2022, Make: models.AllMakes})

	assert.Equal(t, models.Metrics{Raw: 6, Cleaned: 4, Removed: 2}, ov.Metrics)
	assert.Equal(t, 2, ov.Preview.Len())
	assert.Equal(t, 3, ov.Filtered.Len())
	assert.Equal(t, 2015, ov.YearMin)
	assert.Equal(t, 2022, ov.YearMax)
	assert.Equal(t, []models.Count{{Value: "Toyota", N: 2}, {Value: "Hyundai", N: 1}}, ov.TopMakes)
}

func TestSaveWorkbook(t *testing.T) {
	ov := overview(t, models.Selection{YearMin: 2015, YearMax: 2022, Make: "Toyota"})
	path := filepath.Join(t.TempDir(), "out", "cars.xlsx")

	require.NoError(t, SaveWorkbook(path, ov, locale.Get(locale.English)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOverview, SheetPreview, SheetDescribe, SheetTypes, SheetFiltered}, f.GetSheetList())

	v, err := f.GetCellValue(SheetOverview, "B2")
	require.NoError(t, err)
	assert.Equal(t, "6", v)

	v, err = f.GetCellValue(SheetOverview, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Years in Data", v)
	v, err = f.GetCellValue(SheetOverview, "B5")
	require.NoError(t, err)
	assert.Equal(t, "2015-2022", v)

	v, err = f.GetCellValue(SheetPreview, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Hyundai", v)

	v, err = f.GetCellValue(SheetPreview, "H3")
	require.NoError(t, err)
	assert.Equal(t, "185000", v)

	rows, err := f.GetRows(SheetFiltered)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	v, err = f.GetCellValue(SheetDescribe, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Year", v)

	v, err = f.GetCellValue(SheetTypes, "B2")
	require.NoError(t, err)
	assert.Equal(t, "string", v)
}

func TestWriteWorkbookLeavesNaNCellsBlank(t *testing.T) {
	ov := overview(t, models.Selection{YearMin: 2015, YearMax: 2022})
	ov.Describe = []models.ColumnSummary{{Column: "Price", Count: 1, Mean: 1, Std: math.NaN()}}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, ov, locale.Get(locale.Indonesian)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SheetDescribe, "D2")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	v, err = f.GetCellValue(SheetOverview, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total Data Mentah", v)
}

func TestWriteInsights(t *testing.T) {
	ov := overview(t, models.Selection{YearMin: 2015, YearMax: 2022, Make: models.AllMakes})

	var buf bytes.Buffer
	require.NoError(t, WriteInsights(&buf, ov, locale.Get(locale.English)))
	out := buf.String()

	assert.Contains(t, out, "# Saudi Used Car Dashboard")
	assert.Contains(t, out, "- **Total Raw Data**: 6")
	assert.Contains(t, out, "- **Removed Data (Price=0 / Duplicates)**: 2")
	assert.Contains(t, out, "- **Years in Data**: 2015-2022")
	assert.Contains(t, out, "| Toyota | 2 |")
	assert.Contains(t, out, "1. Mileage Matters")
	assert.NotContains(t, out, "No data found")
}

func TestWriteInsightsNoData(t *testing.T) {
	ov := overview(t, models.Selection{YearMin: 2015, YearMax: 2022, Make: "Lada"})

	var buf bytes.Buffer
	require.NoError(t, WriteInsights(&buf, ov, locale.Get(locale.English)))
	assert.Contains(t, buf.String(), "> No data found with the selected filters.")
}

func TestSaveInsights(t *testing.T) {
	ov := overview(t, models.Selection{YearMin: 2015, YearMax: 2022})
	path := filepath.Join(t.TempDir(), "insights.md")
	require.NoError(t, SaveInsights(path, ov, locale.Get(locale.Indonesian)))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.50M", formatNumber(1500000))
	assert.Equal(t, "28.0K", formatNumber(28000))
	assert.Equal(t, "42", formatNumber(42))
	assert.Equal(t, "1.60", formatNumber(1.6))
	assert.Equal(t, "-", formatNumber(math.NaN()))
}
