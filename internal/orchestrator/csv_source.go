package orchestrator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go-corrgen/internal/model"
)

// loadCSVMaster reads a master entity's records from a CSV file instead of
// generating them with the faker registry (SPEC_FULL §9, carried from
// original_source's CSV-backed master kind). Grounded on the teacher's
// internal/pipeline/ingest.go ingestCSV, which reads a header row then maps
// each subsequent row onto it — generalized here from a generic map record
// onto model.Record and narrowed to local files only, since this engine has
// no ingestion-pipeline front end to hand it a URL.
func loadCSVMaster(entity model.EntityConfig) ([]*model.Record, error) {
	f, err := os.Open(entity.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("open csv source for entity %q: %w", entity.Name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header for entity %q: %w", entity.Name, err)
	}

	var records []*model.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row for entity %q: %w", entity.Name, err)
		}
		rec := model.NewRecord()
		for i, h := range headers {
			if i < len(row) {
				rec.Set(h, model.String(row[i]))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
