package pv

import "photovault/internal/database/sqlc"

// ImportResult reports what an import produced. Failures of single items
// do not abort the import.
type ImportResult struct {
	Imported []*sqlc.Photo
	Failed   []ItemFailure
}

// ItemFailure names an input that could not be processed.
type ItemFailure struct {
	Item string
	Err  error
}

// BatchResult summarizes an operation over a list of photo ids.
type BatchResult struct {
	Done    int
	Skipped []ItemFailure
	Failed  []ItemFailure
}

func (r *BatchResult) skip(id int64, err error) {
	r.Skipped = append(r.Skipped, ItemFailure{Item: photoItem(id), Err: err})
}

func (r *BatchResult) fail(id int64, err error) {
	r.Failed = append(r.Failed, ItemFailure{Item: photoItem(id), Err: err})
}

// ExportResult maps exported photo ids to the location of their copy.
type ExportResult struct {
	BatchResult
	Locations map[int64]string
}
