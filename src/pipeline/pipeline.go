package pipeline

import (
	"github.com/jonboulle/clockwork"

	"github.com/username/stonefolio/src/models"
)

// Pipeline converts raw record batches into the Normalized Dataset. It holds
// no per-call state; each Run builds a fresh dataset and the clock is only
// read for the current-year filter bound.
type Pipeline struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Pipeline {
	return &Pipeline{clock: clock}
}

// Run executes map → coerce → derive → filter/sort over one batch. It is
// deterministic for a fixed batch and clock instant, and never fails: row
// level anomalies surface only as nulls (or a zero quantity).
func (p *Pipeline) Run(records []models.RawRecord) models.NormalizedDataset {
	flats := MapRecords(records)

	rows := make([]models.CanonicalRow, 0, len(flats))
	for _, fr := range flats {
		row := CoerceRow(fr)
		DeriveTimeDimensions(&row)
		rows = append(rows, row)
	}

	ds := FilterRows(rows, p.clock.Now().Year())
	SortRows(ds)
	return ds
}
