// Package coverage extracts a line-coverage percentage from XML reports.
//
// Two schema shapes are supported: Cobertura-style documents whose root
// carries a line-rate attribute in [0,1], and JaCoCo-style documents
// whose root holds <counter type="LINE" covered=".." missed=".."/>
// children. Nothing here ever returns an error: every failure mode,
// from a missing file to unparseable XML, reports "no data".
package coverage

import (
	"encoding/xml"
	"log/slog"
	"math"
	"os"
	"strconv"
)

type document struct {
	LineRate *string   `xml:"line-rate,attr"`
	Counters []counter `xml:"counter"`
}

type counter struct {
	Type    string `xml:"type,attr"`
	Covered int64  `xml:"covered,attr"`
	Missed  int64  `xml:"missed,attr"`
}

// PercentFromXML reads one coverage report and returns the percentage,
// rounded to the nearest integer (math.Round, half away from zero).
// The second return is false when the file is absent, unparseable, or
// carries no usable coverage data.
func PercentFromXML(path string) (int, bool) {
	if path == "" {
		return 0, false
	}

	data, err := os.ReadFile(path) //nolint:gosec // report paths are user-chosen
	if err != nil {
		return 0, false
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		slog.Debug("coverage.PercentFromXML", "path", path, "error", err)

		return 0, false
	}

	// Cobertura shape wins when the attribute is present at all, even
	// when it does not parse. A malformed rate is no data, not a fall
	// through to counters.
	if doc.LineRate != nil {
		rate, err := strconv.ParseFloat(*doc.LineRate, 64)
		if err != nil {
			return 0, false
		}

		return int(math.Round(rate * 100)), true
	}

	var covered, missed int64

	found := false

	for _, c := range doc.Counters {
		if c.Type != "LINE" {
			continue
		}

		found = true
		covered += c.Covered
		missed += c.Missed
	}

	total := covered + missed
	if !found || total == 0 {
		return 0, false
	}

	return int(math.Round(float64(covered) / float64(total) * 100)), true
}

// DefaultCandidates are the report locations probed, in order, when the
// caller does not name a file.
//
//nolint:gochecknoglobals // configuration data, effectively const
var DefaultCandidates = []string{
	"coverage.xml",
	"htmlcov/coverage.xml",
	"tests/coverage.xml",
}

// Percent probes candidate report paths in order and returns the first
// percentage that parses. Callers that want a zero default on "no data"
// make that call themselves; this function never invents one.
func Percent(candidates ...string) (int, bool) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	for _, path := range candidates {
		if pct, ok := PercentFromXML(path); ok {
			return pct, true
		}
	}

	return 0, false
}
