// package formatter exports analysis reports to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
)

// Format identifies a report export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat converts a format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json, csv, markdown, or text)", s)
	}
}

// Export renders a report in the given format.
func Export(report *models.Report, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return shared.MarshalJSON(report, true)
	case FormatCSV:
		return ExportToCSV(report)
	case FormatMarkdown:
		return ExportToMarkdown(report)
	case FormatText:
		return ExportToText(report)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ExportToCSV converts a report to CSV with columns: Tag, Count, VideoIDs
func ExportToCSV(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Tag", "Count", "VideoIDs"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, tag := range report.Tags {
		record := []string{
			tag.Tag,
			strconv.Itoa(tag.Count),
			strings.Join(tag.VideoIDs, " "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a report to a Markdown document with a tag table.
func ExportToMarkdown(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Tag report: %s\n\n", report.ChannelTitle))

	if !report.CreatedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Date**: %s\n", report.CreatedAt.Format("2006-01-02 15:04")))
	}
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", report.VideoCount))
	buf.WriteString(fmt.Sprintf("**Distinct tags**: %d\n\n", report.TagCount))

	buf.WriteString("## Tags\n\n")
	buf.WriteString("| # | Tag | Videos |\n")
	buf.WriteString("|---|-----|--------|\n")
	for i, tag := range report.Tags {
		buf.WriteString(fmt.Sprintf("| %d | %s | %d |\n", i+1, tag.Tag, tag.Count))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a report to plain text.
func ExportToText(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Channel: %s\n", report.ChannelTitle))
	buf.WriteString(fmt.Sprintf("Videos: %d\n", report.VideoCount))
	buf.WriteString(fmt.Sprintf("Distinct tags: %d\n\n", report.TagCount))

	for i, tag := range report.Tags {
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, tag.Tag, tag.Count))
	}

	return buf.Bytes(), nil
}

// WriteExport renders the report and writes it to path.
func WriteExport(report *models.Report, format Format, path string) error {
	data, err := Export(report, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
