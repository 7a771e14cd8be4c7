package coverage

import (
	"math"
	"strconv"
	"strings"
)

// PercentFromOutput extracts the overall percentage from a terminal
// coverage report, the "TOTAL ... NN%" summary line pytest-cov prints.
// It is the fallback when no XML report was written. The percentage is
// the last token before the first "%" on the TOTAL line.
func PercentFromOutput(text string) (int, bool) {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "TOTAL") || !strings.Contains(line, "%") {
			continue
		}

		fields := strings.Fields(line[:strings.Index(line, "%")])
		if len(fields) == 0 {
			return 0, false
		}

		rate, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return 0, false
		}

		return int(math.Round(rate)), true
	}

	return 0, false
}
