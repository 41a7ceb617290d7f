package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimmap/internal/batch"
	"github.com/gyeh/claimmap/internal/exitcode"
	"github.com/gyeh/claimmap/internal/logging"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map a file of raw claims and write the normalized claims",
	RunE:  runMap,
}

func init() {
	f := mapCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to JSON or JSON Lines input (required)")
	f.StringVar(&cfg.OutPath, "out", "", "Path for normalized output (required)")
	f.StringVar(&cfg.OutputFormat, "format", "", "Output format: jsonl or parquet (default jsonl)")
	f.BoolVar(&cfg.FailFast, "fail-fast", false, "Abort on the first rejected record")
	_ = mapCmd.MarkFlagRequired("file")
	_ = mapCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateWithOutput(); err != nil {
		vlog := logging.Setup(os.Stderr, cfg.LogFormat)
		vlog.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	log := logging.Setup(os.Stderr, cfg.LogFormat)

	summary, err := batch.Run(context.Background(), log, &cfg, false)
	if err != nil {
		var pe *batch.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("map failed")
			os.Exit(phaseExitCode(pe.Phase))
		}
		log.Error().Err(err).Msg("map failed")
		os.Exit(exitcode.InputError)
	}

	fmt.Printf("Map complete: %d read, %d mapped, %d rejected, %d warnings (%.1fs)\n",
		summary.RecordsRead, summary.RecordsMapped, summary.RecordsRejected,
		summary.Warnings, summary.Duration.Seconds())
	if summary.RecordsRejected > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

func phaseExitCode(phase string) int {
	switch phase {
	case "open", "decode":
		return exitcode.InputError
	case "write":
		return exitcode.OutputError
	default:
		return exitcode.MappingAborted
	}
}
