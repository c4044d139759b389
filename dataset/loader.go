package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"saudicars/models"
)

// DataSourceError reports a source file that is missing, unreadable or
// not a valid car table. Callers treat it as fatal for the request.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %q: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// IsDataSourceError reports whether err (or anything it wraps) is a DataSourceError.
func IsDataSourceError(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}

// Loader reads the raw dataset once and serves the cached copy until the
// file changes on disk or Invalidate is called.
type Loader struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	raw     *models.Dataset
	modTime time.Time
	reads   int
}

// NewLoader creates a Loader for the CSV file at path.
func NewLoader(path string, logger *zap.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With(zap.String("component", "loader")),
	}
}

// Path returns the source location.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the raw dataset, reading the file only on first use or
// after the source has changed. Failed reads are not cached.
func (l *Loader) Load() (*models.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		if l.raw != nil {
			l.logger.Warn("source no longer readable, serving cached dataset", zap.Error(err))
			return l.raw, nil
		}
		return nil, &DataSourceError{Path: l.path, Err: err}
	}

	if l.raw != nil && info.ModTime().Equal(l.modTime) {
		return l.raw, nil
	}

	start := time.Now()
	f, err := os.Open(l.path)
	if err != nil {
		return nil, &DataSourceError{Path: l.path, Err: err}
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, &DataSourceError{Path: l.path, Err: err}
	}

	l.raw = ds
	l.modTime = info.ModTime()
	l.reads++

	l.logger.Info("dataset loaded",
		zap.String("path", l.path),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns)),
		zap.Duration("took", time.Since(start)),
	)
	return ds, nil
}

// Invalidate drops the cached dataset so the next Load re-reads the file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.raw = nil
	l.modTime = time.Time{}
}

// Reads returns how many times the file has actually been parsed.
func (l *Loader) Reads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reads
}

// Parse reads a CSV table with a header row and inferred column types.
func Parse(r io.Reader) (*models.Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{"", "NA", "NaN", "<nil>"}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	names := df.Names()
	types := df.Types()
	columns := make([]models.Column, len(names))
	kinds := make(map[string]models.ColumnType, len(names))
	for i, name := range names {
		columns[i] = models.Column{Name: name, Type: columnType(types[i])}
		kinds[name] = columns[i].Type
	}

	for _, name := range models.RequiredColumns {
		if _, ok := kinds[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	for _, name := range []string{models.ColPrice, models.ColMileage, models.ColEngineSize} {
		if !kinds[name].Numeric() {
			return nil, fmt.Errorf("column %q must be numeric, found %s", name, kinds[name])
		}
	}
	if kinds[models.ColYear] != models.TypeInt {
		return nil, fmt.Errorf("column %q must hold integers, found %s", models.ColYear, kinds[models.ColYear])
	}

	years, err := df.Col(models.ColYear).Int()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", models.ColYear, err)
	}

	price := df.Col(models.ColPrice).Float()
	mileage := df.Col(models.ColMileage).Float()
	engine := df.Col(models.ColEngineSize).Float()
	makes := df.Col(models.ColMake).Records()
	gears := df.Col(models.ColGearType).Records()
	options := df.Col(models.ColOptions).Records()

	// Records() puts the header first and prints floats with six decimals;
	// float cells are rewritten in their shortest exact form.
	rows := df.Records()[1:]
	for j, c := range columns {
		if c.Type != models.TypeFloat {
			continue
		}
		for i, v := range df.Col(c.Name).Float() {
			rows[i][j] = formatFloat(v)
		}
	}

	ds := &models.Dataset{
		Columns: columns,
		Records: make([]models.Record, len(rows)),
	}
	for i, row := range rows {
		ds.Records[i] = models.Record{
			Price:      price[i],
			Year:       years[i],
			Make:       makes[i],
			Mileage:    mileage[i],
			EngineSize: engine[i],
			GearType:   gears[i],
			Options:    options[i],
			Values:     row,
		}
	}
	return ds, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func columnType(t series.Type) models.ColumnType {
	switch t {
	case series.Int:
		return models.TypeInt
	case series.Float:
		return models.TypeFloat
	case series.Bool:
		return models.TypeBool
	default:
		return models.TypeString
	}
}
