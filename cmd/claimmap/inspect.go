package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/claimmap/internal/claimio"
	"github.com/gyeh/claimmap/internal/exitcode"
	"github.com/gyeh/claimmap/internal/logging"
)

var inspectLimit int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.parquet>",
	Short: "Print the first rows of a Parquet file written by map",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 10, "Maximum rows to print")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(os.Stderr, cfg.LogFormat)

	reader, err := claimio.OpenParquet(args[0])
	if err != nil {
		log.Error().Err(err).Msg("failed to open parquet file")
		os.Exit(exitcode.InputError)
	}
	defer reader.Close()

	fmt.Printf("Total rows: %d\n", reader.NumRows())

	for printed := 0; printed < inspectLimit; {
		rows, readErr := reader.Next(min(256, inspectLimit-printed))
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Error().Err(readErr).Msg("failed to read rows")
			os.Exit(exitcode.InputError)
		}
		for _, r := range rows {
			fmt.Printf("  %-6d %-16s npi=%s dos=%s cpt=%s icd=%s charge=%d\n",
				r.SourceIndex, r.ClaimID, r.ProviderNPI, r.DateOfService,
				strings.Join(r.ProcedureCodes, ","), strings.Join(r.DiagnosisCodes, ","),
				r.TotalChargeCents)
		}
		printed += len(rows)
	}
	return nil
}
