// Package articles turns the template and the CSV data into the finished
// article set and handles the CSV input/output around it.
package articles

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
	"github.com/pagesmith-hq/confluence-uploader/internal/domain"
	"github.com/pagesmith-hq/confluence-uploader/internal/logger"
)

// LoadRows reads the article data CSV. Every cell is trimmed, the ID column
// must be present, and row IDs must be unique. Duplicate IDs are each logged
// so one pass reports all of them, then the load fails with the aggregate
// count.
func LoadRows(path string, delimiter rune, idHeader string, log logger.Logger) (*domain.Table, error) {
	if log == nil {
		log = &logger.NopLogger{}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open article data csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read article data csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("article data csv %q is empty", path)
	}

	header := make([]string, len(records[0]))
	idIndex := -1
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
		if header[i] == idHeader {
			idIndex = i
		}
	}
	if idIndex < 0 {
		return nil, apperrors.DataNoIDColumn.New(idHeader)
	}

	table := &domain.Table{Header: header}
	ids := make(map[string]struct{}, len(records)-1)
	duplicates := 0

	for _, record := range records[1:] {
		values := make(map[string]string, len(header))
		for i, name := range header {
			values[name] = strings.TrimSpace(record[i])
		}

		id := values[idHeader]
		if _, exists := ids[id]; exists {
			duplicates++
			dup := apperrors.DataDuplicateID.New(id)
			log.ErrorObj("duplicate article data id", "data_error", map[string]any{
				"error_id": dup.ID(),
				"message":  dup.Error(),
			})
		}
		ids[id] = struct{}{}

		table.Rows = append(table.Rows, domain.Row{ID: id, Values: values})
	}

	if duplicates > 0 {
		return nil, apperrors.DataNonUniqueIDs.New(duplicates)
	}

	return table, nil
}

// WriteErroredRows re-serializes the given rows in the original column order
// so they can be fixed up and retried as a fresh input file.
func WriteErroredRows(path string, delimiter rune, header []string, rows []domain.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("no errored rows to write")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create errored articles csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write errored articles header: %w", err)
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, name := range header {
			record[i] = row.Values[name]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write errored articles row %q: %w", row.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
