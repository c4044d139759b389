package dataset

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"saudicars/models"
)

// Cleaner turns the raw dataset into the usable one: rows with a hidden or
// negotiable price (Price <= 0) are dropped, then exact duplicate rows.
type Cleaner struct {
	logger *zap.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *zap.Logger) *Cleaner {
	return &Cleaner{logger: logger.With(zap.String("component", "cleaner"))}
}

// Clean returns a new dataset; raw is not modified. Survivors keep their
// original order and the first of each set of duplicates is kept.
func (c *Cleaner) Clean(raw *models.Dataset) *models.Dataset {
	out := raw.Derive(raw.Len())
	seen := make(map[string]struct{}, raw.Len())

	var nonPositive, duplicates int
	for _, r := range raw.Records {
		// NaN fails this comparison too.
		if !(r.Price > 0) {
			nonPositive++
			continue
		}

		key := rowKey(r)
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}

		out.Records = append(out.Records, r)
	}

	c.logger.Debug("cleaned dataset",
		zap.Int("raw", raw.Len()),
		zap.Int("cleaned", out.Len()),
		zap.Int("non_positive_price", nonPositive),
		zap.Int("duplicates", duplicates),
	)
	return out
}

// rowKey encodes every field of the row, length-prefixed so that no two
// different rows share a key.
func rowKey(r models.Record) string {
	values := r.Values
	if values == nil {
		values = []string{
			strconv.FormatFloat(r.Price, 'g', -1, 64),
			strconv.Itoa(r.Year),
			r.Make,
			strconv.FormatFloat(r.Mileage, 'g', -1, 64),
			strconv.FormatFloat(r.EngineSize, 'g', -1, 64),
			r.GearType,
			r.Options,
		}
	}

	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}
