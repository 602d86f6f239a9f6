// importrun executes one import over a local tabular file: it loads and
// validates the import configuration, runs the filter/clean/dedupe pipeline,
// writes the cleaned rows as JSON to stdout, and logs a run summary
// including the schedule's next run time.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"importpipe/internal/batch"
	"importpipe/internal/config"
	"importpipe/internal/schedule"
	"importpipe/internal/source"
	"importpipe/pkg/records"
)

func main() {
	var (
		cfgPath   string
		filePath  string
		sheet     string
		delimiter string
		validate  bool
		reasons   bool
		workers   int
		level     string
	)

	flag.StringVar(&cfgPath, "config", "import.json", "import config path (JSON or YAML)")
	flag.StringVar(&filePath, "file", "", "path to the CSV or XLSX file to process")
	flag.StringVar(&sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	flag.StringVar(&delimiter, "delimiter", ",", "CSV field delimiter (single character)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&reasons, "reasons", false, "include per-row skip reasons in the output")
	flag.IntVar(&workers, "workers", 1, "shard fan-out for the filter/clean stages")
	flag.StringVar(&level, "level", "info", "log level: debug|info|warn|error")
	flag.Parse()

	logger := newZap(level)
	defer logger.Sync()

	imp, err := config.LoadFile(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	issues := config.ValidateImport(imp)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		logger.Fatal("configuration is invalid", zap.String("config", cfgPath))
	}
	if validate {
		logger.Info("configuration is valid", zap.String("config", cfgPath))
		return
	}

	if filePath == "" {
		logger.Fatal("missing -file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	columns, rows, err := readSource(filePath, sheet, delimiter)
	if err != nil {
		logger.Fatal("read source", zap.Error(err))
	}
	logger.Info("source loaded",
		zap.String("file", filePath),
		zap.Int("columns", len(columns)),
		zap.Int("rows", len(rows)))

	proc, err := batch.New(imp, batch.WithWorkers(workers))
	if err != nil {
		logger.Fatal("compile import", zap.Error(err))
	}

	started := time.Now()
	res, err := proc.Process(ctx, rows)
	if err != nil {
		logger.Fatal("process rows", zap.Error(err))
	}

	logger.Info("run complete",
		zap.String("import", imp.Name),
		zap.Int("in", len(rows)),
		zap.Int("out", len(res.CleanedRows)),
		zap.Int("skipped", res.Skipped),
		zap.Int("duplicatesRemoved", res.DuplicatesRemoved),
		zap.Duration("took", time.Since(started)))

	if next, ok := schedule.NextSyncTime(ctx, imp.Schedule, time.Now()); ok {
		logger.Info("next run", zap.Time("at", next))
	} else {
		logger.Info("no next run scheduled", zap.String("frequency", imp.Schedule.Frequency))
	}

	out := struct {
		CleanedRows       []records.Record   `json:"cleaned_rows"`
		Skipped           int                `json:"skipped"`
		DuplicatesRemoved int                `json:"duplicates_removed"`
		SkipReasons       []batch.SkipReason `json:"skip_reasons,omitempty"`
	}{
		CleanedRows:       res.CleanedRows,
		Skipped:           res.Skipped,
		DuplicatesRemoved: res.DuplicatesRemoved,
	}
	if reasons {
		out.SkipReasons = res.SkipReasons
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal("encode output", zap.Error(err))
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

// newZap builds a production logger at the requested level.
func newZap(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}
