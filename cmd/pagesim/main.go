// Command pagesim replays a reference string through a page replacement
// policy and prints the fault trace.
//
// Input is read from stdin as: <frames> <policy> <page> ... -1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/sibexico/PageSim/paging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pagesim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a JSON config file (defaults come from PAGESIM_* variables)")
	compare := fs.Bool("compare", false, "run every policy and print a summary")
	sweep := fs.Int("sweep", 0, "report fault counts for 1..N frames instead of a trace")
	archivePath := fs.String("archive", "", "write the compressed trace to this file")
	compression := fs.String("compression", "", "archive compression (none, lz4, snappy)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *compression != "" {
		config.TraceCompression = *compression
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	level, _ := paging.ParseLogLevel(config.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sim := paging.NewSimulator(config, paging.WithLogger(logger))
	if m := sim.Metrics(); m != nil {
		defer m.LogMetrics(logger)
	}

	if isTerminal(stdin) {
		fmt.Fprintln(stderr, "enter: <frames> <policy> <page> ... -1")
	}

	input, err := paging.ParseInput(stdin, config)
	if err != nil {
		logger.Error("invalid input", slog.String("error", err.Error()))
		return 1
	}

	switch {
	case *compare:
		return runCompare(sim, input, stdout, logger)
	case *sweep > 0:
		return runSweep(sim, input, *sweep, stdout, logger)
	}

	result, err := sim.RunNamed(input.Policy, input.FrameSize, input.References)
	if err != nil {
		if paging.IsErrorCode(err, paging.ErrCodeUnknownPolicy) {
			paging.WriteInvalidPolicy(stdout)
		} else {
			logger.Error("simulation failed", slog.String("error", err.Error()))
		}
		return 1
	}

	if err := paging.WriteTrace(stdout, result); err != nil {
		logger.Error("failed to write trace", slog.String("error", err.Error()))
		return 1
	}

	if *archivePath != "" {
		ct, _ := paging.ParseCompressionType(config.TraceCompression)
		n, err := paging.WriteArchiveFile(*archivePath, result, ct)
		if err != nil {
			logger.Error("failed to archive trace", slog.String("error", err.Error()))
			return 1
		}
		logger.Info("trace archived",
			slog.String("path", *archivePath),
			slog.String("compression", ct.String()),
			slog.String("size", humanize.Bytes(uint64(n))),
		)
	}

	return 0
}

func loadConfig(path string) (*paging.Config, error) {
	if path == "" {
		return paging.LoadConfigFromEnv(), nil
	}
	return paging.LoadConfigFromFile(path)
}

func runCompare(sim *paging.Simulator, input *paging.Input, stdout io.Writer, logger *slog.Logger) int {
	results, err := sim.Compare(context.Background(), input.FrameSize, input.References)
	if err != nil {
		logger.Error("comparison failed", slog.String("error", err.Error()))
		return 1
	}
	if err := paging.WriteComparison(stdout, results); err != nil {
		logger.Error("failed to write comparison", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func runSweep(sim *paging.Simulator, input *paging.Input, maxFrames int, stdout io.Writer, logger *slog.Logger) int {
	kind, err := paging.ParsePolicyKind(input.Policy)
	if err != nil {
		paging.WriteInvalidPolicy(stdout)
		return 1
	}

	sweeper, err := paging.NewSweeper(sim)
	if err != nil {
		logger.Error("failed to create sweeper", slog.String("error", err.Error()))
		return 1
	}
	defer sweeper.Close()

	points, err := sweeper.Sweep(kind, input.References, 1, maxFrames)
	if err != nil {
		logger.Error("sweep failed", slog.String("error", err.Error()))
		return 1
	}

	for _, p := range points {
		fmt.Fprintf(stdout, "%s frames=%d faults=%s\n", kind, p.FrameSize, humanize.Comma(int64(p.Faults)))
	}
	if anomalies := paging.BeladyAnomalies(points); len(anomalies) > 0 {
		fmt.Fprintf(stdout, "Belady anomaly at frames %v\n", anomalies)
	}
	return 0
}
