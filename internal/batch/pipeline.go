package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimmap/internal/claimio"
	"github.com/gyeh/claimmap/internal/config"
	"github.com/gyeh/claimmap/internal/logging"
	"github.com/gyeh/claimmap/internal/mapper"
	"github.com/gyeh/claimmap/internal/model"
	"github.com/gyeh/claimmap/internal/normalize"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run maps every record of cfg.FilePath. When dryRun is false mapped claims
// are written to cfg.OutPath in cfg.OutputFormat. Rejected records are
// counted and logged; with cfg.FailFast the first one aborts the run.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, dryRun bool) (res *model.RunSummary, retErr error) {
	start := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "open", Err: err}
	}

	in, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "open", Err: fmt.Errorf("open input: %w", err)}
	}
	defer in.Close()

	var out claimio.RowWriter
	if !dryRun {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			return nil, &PipelineError{Phase: "write", Err: fmt.Errorf("create output: %w", err)}
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && retErr == nil {
				res, retErr = nil, &PipelineError{Phase: "write", Err: fmt.Errorf("close output: %w", cerr)}
			}
			if retErr != nil {
				// Never leave a partial output behind.
				if rerr := os.Remove(cfg.OutPath); rerr != nil {
					log.Warn().Err(rerr).Str("file", cfg.OutPath).Msg("failed to remove partial output")
				}
			}
		}()
		if out, err = claimio.NewWriter(cfg.OutputFormat, f); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
	}

	log.Info().
		Str("file", cfg.FilePath).
		Str("sha256", sha).
		Bool("dry_run", dryRun).
		Msg("starting run")

	warns := &countingLogger{next: logging.FromZerolog(log)}
	m := mapper.New(warns)
	dec := claimio.NewDecoder(in)

	summary := &model.RunSummary{
		FilePath:       cfg.FilePath,
		FileSHA256:     sha,
		RunID:          runID.String(),
		RejectedByKind: make(map[string]int64),
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, &PipelineError{Phase: "map", Err: err}
		}

		raw, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &PipelineError{Phase: "decode", Err: err}
		}
		idx := summary.RecordsRead
		summary.RecordsRead++

		claim, err := m.Map(raw)
		if err != nil {
			summary.RecordsRejected++
			kind, _ := normalize.KindOf(err)
			summary.RejectedByKind[string(kind)]++

			ev := log.Warn().Err(err).Int64("record", idx)
			var fe *normalize.Error
			if errors.As(err, &fe) {
				ev = ev.Fields(fe.Context())
			}
			ev.Msg("record rejected")

			if cfg.FailFast {
				return nil, &PipelineError{Phase: "map", Err: fmt.Errorf("record %d: %w", idx, err)}
			}
			continue
		}
		summary.RecordsMapped++

		if out != nil {
			if err := out.Write(normalize.ToClaimRow(claim, runID, idx)); err != nil {
				return nil, &PipelineError{Phase: "write", Err: err}
			}
		}
	}

	if out != nil {
		if err := out.Close(); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
	}

	summary.Warnings = warns.count.Load()
	summary.Duration = time.Since(start)

	log.Info().
		Int64("records_read", summary.RecordsRead).
		Int64("records_mapped", summary.RecordsMapped).
		Int64("records_rejected", summary.RecordsRejected).
		Int64("warnings", summary.Warnings).
		Str("duration", summary.Duration.String()).
		Msg("run complete")

	return summary, nil
}

// countingLogger counts warn-level messages before forwarding them.
type countingLogger struct {
	next  logging.Logger
	count atomic.Int64
}

func (c *countingLogger) Info(msg string, fields map[string]any) { c.next.Info(msg, fields) }

func (c *countingLogger) Warn(msg string, fields map[string]any) {
	c.count.Add(1)
	c.next.Warn(msg, fields)
}

func (c *countingLogger) Error(msg string, fields map[string]any) { c.next.Error(msg, fields) }
