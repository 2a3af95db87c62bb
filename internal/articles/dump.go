package articles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DumpJSON writes v as pretty-printed JSON into dir, creating the directory
// if needed. Used for the optional template and generated-article dumps.
func DumpJSON(dir, name string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dump directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dump %q: %w", name, err)
	}

	path := filepath.Join(dir, sanitizeFileName(name)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dump %q: %w", path, err)
	}
	return nil
}

// sanitizeFileName keeps dump names from escaping the dump directory, as
// generated article titles are user-controlled.
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", string(os.PathSeparator), "_")
	out := replacer.Replace(name)
	if out == "" || out == "." || out == ".." {
		return "dump"
	}
	return out
}
