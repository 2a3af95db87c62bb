package notify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeNotifiersFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write notifiers file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeNotifiersFile(t, "notifiers.yaml", `
sinks:
  - id: hook
    type: http
    http:
      url: https://example.test/hook
  - id: queue
    type: sqs
    enabled: false
    sqs:
      uri: https://sqs.eu-central-1.amazonaws.com/1/uploads
      region: eu-central-1
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(reg.All()))
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "hook" {
		t.Fatalf("expected only the enabled hook sink, got %+v", enabled)
	}

	hook, ok := reg.ByID("hook")
	if !ok {
		t.Fatalf("expected hook sink by id")
	}
	if hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected http defaults applied, got %+v", hook.HTTP)
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	path := writeNotifiersFile(t, "notifiers.yaml", `
sinks:
  - id: hook
    type: http
    http:
      url: https://example.test/a
  - id: hook
    type: http
    http:
      url: https://example.test/b
`)

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadRegistryRejectsIncompleteSink(t *testing.T) {
	path := writeNotifiersFile(t, "notifiers.yaml", `
sinks:
  - id: queue
    type: sqs
    sqs:
      uri: ""
      region: eu-central-1
`)

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected validation error for missing queue uri")
	}
}

func TestRegistryRejectsUnknownType(t *testing.T) {
	reg := DefaultRegistry()
	_, err := reg.SinkFor(context.Background(), SinkConfig{ID: "x", Type: "carrier-pigeon"}, nil)
	if err == nil {
		t.Fatalf("expected error for unknown sink type")
	}
}
