package articles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pagesmith-hq/confluence-uploader/internal/apperrors"
	"github.com/pagesmith-hq/confluence-uploader/internal/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadRowsTrimsAndPreservesOrder(t *testing.T) {
	path := writeCSV(t, "id; name ;city\n 1 ;Alice; Berlin \n2; Bob ;Paris\n")

	table, err := LoadRows(path, ';', "id", nil)
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}

	wantHeader := []string{"id", "name", "city"}
	for i, name := range wantHeader {
		if table.Header[i] != name {
			t.Fatalf("header[%d] = %q, want %q", i, table.Header[i], name)
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].ID != "1" || table.Rows[1].ID != "2" {
		t.Fatalf("row order or ids broken: %+v", table.Rows)
	}
	if got := table.Rows[0].Values["city"]; got != "Berlin" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestLoadRowsFailsWithoutIDColumn(t *testing.T) {
	path := writeCSV(t, "name;city\nAlice;Berlin\n")

	_, err := LoadRows(path, ';', "id", nil)
	if !apperrors.IsCode(err, apperrors.DataNoIDColumn) {
		t.Fatalf("expected missing-id-column error, got %v", err)
	}
}

func TestLoadRowsFailsOnDuplicateIDs(t *testing.T) {
	path := writeCSV(t, "id;name\n1;Alice\n2;Bob\n1;Carol\n2;Dan\n")

	_, err := LoadRows(path, ';', "id", nil)
	if !apperrors.IsCode(err, apperrors.DataNonUniqueIDs) {
		t.Fatalf("expected non-unique-ids error, got %v", err)
	}
	ae := apperrors.From(err)
	if got := ae.Error(); got != "the article data contain 2 entries with non-unique ID values" {
		t.Fatalf("unexpected aggregate message %q", got)
	}
}

func TestWriteErroredRowsRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "errored.csv")

	header := []string{"id", "name"}
	rows := []domain.Row{
		{ID: "2", Values: map[string]string{"id": "2", "name": "Bob"}},
	}
	if err := WriteErroredRows(path, ';', header, rows); err != nil {
		t.Fatalf("WriteErroredRows: %v", err)
	}

	table, err := LoadRows(path, ';', "id", nil)
	if err != nil {
		t.Fatalf("LoadRows on exported file: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0].Values["name"] != "Bob" {
		t.Fatalf("exported rows broken: %+v", table.Rows)
	}
}
