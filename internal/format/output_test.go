package format

import (
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, map[string]any{"data": []int{1, 2}}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := sb.String(); got != "{\"data\":[1,2]}\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestWritePretty(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, map[string]int{"n": 1}, "", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(sb.String(), "\n  \"n\": 1\n") {
		t.Fatalf("expected indented output, got %q", sb.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, nil, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
