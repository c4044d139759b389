package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saudicars/models"
)

func TestParseInfersTypes(t *testing.T) {
	ds := mustParse(t, sampleCSV)

	require.Equal(t, 5, ds.Len())
	assert.Len(t, ds.Columns, 11)

	types := make(map[string]models.ColumnType)
	for _, c := range ds.Columns {
		types[c.Name] = c.Type
	}
	assert.Equal(t, models.TypeInt, types[models.ColYear])
	assert.Equal(t, models.TypeInt, types[models.ColPrice])
	assert.Equal(t, models.TypeFloat, types[models.ColEngineSize])
	assert.Equal(t, models.TypeString, types[models.ColMake])

	first := ds.Records[0]
	assert.Equal(t, "Hyundai", first.Make)
	assert.Equal(t, 2015, first.Year)
	assert.Equal(t, 28000.0, first.Price)
	assert.Equal(t, 1.6, first.EngineSize)
	assert.Equal(t, "Automatic", first.GearType)
	assert.Equal(t, "Standard", first.Options)
	assert.Len(t, first.Values, 11)
	assert.Equal(t, "Accent", first.Values[0])
}

func TestParseRejectsMalformedSources(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty", csv: ""},
		{name: "missing price column", csv: "Make,Year,Mileage,Engine_Size,Gear_Type,Options\nKia,2015,1,1.0,Manual,Standard\n"},
		{name: "textual price", csv: "Make,Year,Mileage,Engine_Size,Gear_Type,Options,Price\nKia,2015,1,1.0,Manual,Standard,cheap\n"},
		{name: "header only", csv: "Make,Year,Mileage,Engine_Size,Gear_Type,Options,Price\n"},
		{name: "textual year", csv: "Make,Year,Mileage,Engine_Size,Gear_Type,Options,Price\nKia,new,1,1.0,Manual,Standard,100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "cars.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoaderMemoizes(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	loader := NewLoader(path, zap.NewNop())
	assert.Equal(t, path, loader.Path())

	first, err := loader.Load()
	require.NoError(t, err)
	second, err := loader.Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.Reads())
}

func TestLoaderReloadsWhenSourceChanges(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	loader := NewLoader(path, zap.NewNop())

	first, err := loader.Load()
	require.NoError(t, err)

	lines := strings.SplitAfter(sampleCSV, "\n")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines[:3], "")), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := loader.Load()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, 2, loader.Reads())
}

func TestLoaderInvalidate(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	loader := NewLoader(path, zap.NewNop())

	_, err := loader.Load()
	require.NoError(t, err)
	loader.Invalidate()
	_, err = loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 2, loader.Reads())
}

func TestLoaderMissingSource(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())

	_, err := loader.Load()
	require.Error(t, err)

	var dse *DataSourceError
	require.True(t, errors.As(err, &dse))
	assert.True(t, IsDataSourceError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestLoaderMalformedSourceIsNotCached(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "Make,Year\nKia,2015\n")
	loader := NewLoader(path, zap.NewNop())

	_, err := loader.Load()
	require.Error(t, err)
	assert.True(t, IsDataSourceError(err))

	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	ds, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
}

func TestLoaderServesCacheWhenSourceDisappears(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleCSV)
	loader := NewLoader(path, zap.NewNop())

	first, err := loader.Load()
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	second, err := loader.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	loader.Invalidate()
	_, err = loader.Load()
	assert.True(t, IsDataSourceError(err))
}
