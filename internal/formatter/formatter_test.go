package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytag/internal/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		ID:           "report-1",
		ChannelTitle: "Test Channel",
		VideoCount:   3,
		TagCount:     2,
		CreatedAt:    time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		Tags: []models.TagCount{
			{Tag: "cats", Count: 2, VideoIDs: []string{"v1", "v2"}},
			{Tag: "funny", Count: 1, VideoIDs: []string{"v1"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"TEXT", FormatText, false},
		{"txt", FormatText, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleReport())
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Tag,Count,VideoIDs" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "cats,2,v1 v2" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleReport())
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content := string(data)
	for _, expected := range []string{
		"# Tag report: Test Channel",
		"**Videos**: 3",
		"| 1 | cats | 2 |",
		"| 2 | funny | 1 |",
	} {
		if !strings.Contains(content, expected) {
			t.Errorf("expected markdown to contain %q:\n%s", expected, content)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleReport())
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "Channel: Test Channel") {
		t.Errorf("expected channel line:\n%s", content)
	}
	if !strings.Contains(content, "1. cats (2)") {
		t.Errorf("expected ranked tag line:\n%s", content)
	}
}

func TestExportJSON(t *testing.T) {
	data, err := Export(sampleReport(), FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded models.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.ChannelTitle != "Test Channel" || len(decoded.Tags) != 2 {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	if err := WriteExport(sampleReport(), FormatCSV, path); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "Tag,Count,VideoIDs") {
		t.Errorf("unexpected export content: %s", data)
	}
}
