package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/farcloser/casparian/internal/types"
)

// Record is one line of the JSONL run log consumed by cas-report.
type Record struct {
	Timestamp time.Time          `json:"timestamp"`
	Passed    bool               `json:"passed"`
	Gates     []types.GateResult `json:"gates"`
	Coverage  *int               `json:"coverage,omitempty"`
	Counts    map[string]int     `json:"counts"`
}

// NewRecord builds a run-log record from a finished run.
func NewRecord(gates []types.GateResult, findings []types.Finding, coverage *int) Record {
	counts := map[string]int{}
	for _, f := range findings {
		counts[string(f.Level)]++
	}

	return Record{
		Timestamp: time.Now().UTC(),
		Passed:    allPassed(gates),
		Gates:     gates,
		Coverage:  coverage,
		Counts:    counts,
	}
}

// AppendRecord appends one record to the JSONL run log at path.
func AppendRecord(path string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("rendering run record: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // log path is user-chosen
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}

	return nil
}
