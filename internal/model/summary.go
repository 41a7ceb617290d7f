package model

import "time"

// RunSummary captures metrics from mapping one input file.
type RunSummary struct {
	FilePath        string
	FileSHA256      string
	RunID           string
	RecordsRead     int64
	RecordsMapped   int64
	RecordsRejected int64
	RejectedByKind  map[string]int64
	Warnings        int64
	Duration        time.Duration
}
