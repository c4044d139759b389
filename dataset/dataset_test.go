package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saudicars/models"
)

const sampleCSV = `Type,Region,Make,Gear_Type,Origin,Options,Year,Engine_Size,Mileage,Negotiable,Price
Accent,Riyadh,Hyundai,Automatic,Saudi,Standard,2015,1.6,120000,False,28000
Land Cruiser,Riyadh,Toyota,Automatic,Gulf Arabic,Full,2018,4.6,80000,False,185000
Land Cruiser,Riyadh,Toyota,Automatic,Gulf Arabic,Full,2018,4.6,80000,False,185000
Camry,Jeddah,Toyota,Automatic,Saudi,Semi Full,2020,2.5,35000,True,0
Sonata,Dammam,Hyundai,Manual,Saudi,Standard,2022,2.4,5000,False,95000
`

func newTestCleaner() *Cleaner { return NewCleaner(zap.NewNop()) }

func mustParse(t *testing.T, csv string) *models.Dataset {
	t.Helper()
	ds, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	return ds
}

func record(year int, make string, price float64) models.Record {
	return models.Record{
		Price:      price,
		Year:       year,
		Make:       make,
		Mileage:    1000,
		EngineSize: 2,
		GearType:   "Automatic",
		Options:    "Standard",
	}
}

func datasetOf(records ...models.Record) *models.Dataset {
	return &models.Dataset{
		Columns: []models.Column{
			{Name: models.ColMake, Type: models.TypeString},
			{Name: models.ColGearType, Type: models.TypeString},
			{Name: models.ColOptions, Type: models.TypeString},
			{Name: models.ColYear, Type: models.TypeInt},
			{Name: models.ColEngineSize, Type: models.TypeFloat},
			{Name: models.ColMileage, Type: models.TypeInt},
			{Name: models.ColPrice, Type: models.TypeInt},
		},
		Records: records,
	}
}
