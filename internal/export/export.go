// Package export renders the task list for use outside tasker.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tasker/internal/output"
	"tasker/internal/taskstore"
)

// Format is an export format name.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatPDF}

// CSVHeader is the first row of a CSV export.
var CSVHeader = []string{"number", "description", "done", "created"}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %s (want json, csv or pdf)", name)
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []taskstore.Task) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeJSON(w io.Writer, tasks []taskstore.Task) error {
	if tasks == nil {
		tasks = []taskstore.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(tasks)
}

func writeCSV(w io.Writer, tasks []taskstore.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i, task := range tasks {
		record := []string{
			strconv.Itoa(i + 1),
			task.Description,
			strconv.FormatBool(task.Done),
			created(task),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []taskstore.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate descriptions from UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}
	for i, task := range tasks {
		line := fmt.Sprintf("%d. %s %s", i+1, output.Mark(task), output.NormalizeDescription(task.Description))
		if c := created(task); c != "" {
			line += "  (" + c + ")"
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	return pdf.Output(w)
}

func created(task taskstore.Task) string {
	if task.Created == nil {
		return ""
	}
	return task.Created.Format(time.RFC3339)
}
