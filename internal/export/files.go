package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/regnskap/internal/statement"
)

// Output formats accepted by WriteFiles.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Output file names inside the output directory.
const (
	FileStatement = "oppstilling.csv"
	FileAccounts  = "detaljer_konto.csv"
	FileDetails   = "detaljlinjer.csv"
	FileKPI       = "kpi.csv"
	FileUnmapped  = "umappet.csv"
	FileWorkbook  = "regnskap.xlsx"
)

// WriteFiles writes res to dir in each of formats and returns the paths
// written, in order.
func WriteFiles(dir string, res *statement.Result, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case FormatCSV:
			files := []struct {
				name  string
				write func(io.Writer) error
			}{
				{FileStatement, func(w io.Writer) error { return WriteStatementCSV(w, res.Lines) }},
				{FileAccounts, func(w io.Writer) error { return WriteAccountsCSV(w, res.Accounts) }},
				{FileDetails, func(w io.Writer) error { return WriteLineDetailsCSV(w, res.LineDetails) }},
				{FileKPI, func(w io.Writer) error { return WriteKPICSV(w, res.KPIs) }},
				{FileUnmapped, func(w io.Writer) error { return WriteUnmappedCSV(w, res.Unmapped) }},
			}
			for _, file := range files {
				path := filepath.Join(dir, file.name)
				if err := writeFile(path, file.write); err != nil {
					return written, err
				}
				written = append(written, path)
			}
		case FormatXLSX:
			path := filepath.Join(dir, FileWorkbook)
			if err := writeFile(path, func(w io.Writer) error { return WriteXLSX(w, res) }); err != nil {
				return written, err
			}
			written = append(written, path)
		default:
			return written, fmt.Errorf("unknown output format %q", format)
		}
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
