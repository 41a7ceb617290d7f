package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimmap/internal/batch"
	"github.com/gyeh/claimmap/internal/exitcode"
	"github.com/gyeh/claimmap/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run validation and stats (no writes)",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to JSON or JSON Lines input (required)")
	_ = checkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		vlog := logging.Setup(os.Stderr, cfg.LogFormat)
		vlog.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	log := logging.Setup(os.Stderr, cfg.LogFormat)

	summary, err := batch.Run(context.Background(), log, &cfg, true)
	if err != nil {
		var pe *batch.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("check failed")
			os.Exit(phaseExitCode(pe.Phase))
		}
		log.Error().Err(err).Msg("check failed")
		os.Exit(exitcode.InputError)
	}

	fmt.Println("=== claimmap check ===")
	fmt.Printf("File:     %s\n", summary.FilePath)
	fmt.Printf("SHA-256:  %s\n", summary.FileSHA256)
	fmt.Printf("Read:     %d records\n", summary.RecordsRead)
	fmt.Printf("Mapped:   %d records\n", summary.RecordsMapped)
	fmt.Printf("Rejected: %d records\n", summary.RecordsRejected)
	fmt.Printf("Warnings: %d\n", summary.Warnings)

	if len(summary.RejectedByKind) > 0 {
		kinds := make([]string, 0, len(summary.RejectedByKind))
		for k := range summary.RejectedByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Println()
		fmt.Println("Rejections by kind:")
		for _, k := range kinds {
			fmt.Printf("  %-20s %d\n", k, summary.RejectedByKind[k])
		}
	}
	return nil
}
