package main

// digestRecord holds the typed fields needed by the digest command,
// one per line of the JSONL run log.
type digestRecord struct {
	Timestamp string         `json:"timestamp"`
	Passed    bool           `json:"passed"`
	Gates     []digestGate   `json:"gates"`
	Coverage  *int           `json:"coverage"`
	Counts    map[string]int `json:"counts"`

	// Error is set locally for lines that failed to parse.
	Error string `json:"-"`
}

type digestGate struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// gateBreakdown tracks per-gate failure counts for the digest.
type gateBreakdown struct {
	Name     string
	Runs     int
	Failures int
}
