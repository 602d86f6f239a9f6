// importprobe samples a tabular extract (CSV or XLSX) and prints a suggested
// import configuration as JSON, together with the column previews it was
// derived from. The output is a starting point for hand editing, not a final
// config.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"importpipe/internal/probe"
	"importpipe/internal/source"
	"importpipe/pkg/records"
)

var (
	flagFile      = flag.String("file", "", "path to the CSV or XLSX file to sample")
	flagName      = flag.String("name", "", "import name (defaults to the file name)")
	flagDelimiter = flag.String("delimiter", ",", "CSV field delimiter (single character)")
	flagSheet     = flag.String("sheet", "", "XLSX sheet name (default: first sheet)")
	flagSample    = flag.Int("sample", probe.DefaultSampleSize, "number of rows to sample for type detection")
)

func main() {
	flag.Parse()

	if *flagFile == "" {
		fatalf("missing -file")
	}

	name := *flagName
	if name == "" {
		base := filepath.Base(*flagFile)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	columns, rows, err := readSource(*flagFile, *flagSheet, *flagDelimiter)
	if err != nil {
		fatalf("read source: %v", err)
	}

	res := probe.Suggest(columns, rows, probe.Options{
		Name:       name,
		SampleSize: *flagSample,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fatalf("encode output: %v", err)
	}
}

// readSource dispatches on file extension: .xlsx goes through excelize,
// everything else is treated as CSV.
func readSource(path, sheet, delimiter string) ([]string, []records.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return source.ReadXLSX(path, sheet)
	}

	delim := ','
	if delimiter != "" {
		if r, _ := utf8.DecodeRuneInString(delimiter); r != utf8.RuneError {
			delim = r
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return source.ReadCSV(f, delim)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
