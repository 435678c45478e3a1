package scoring

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteSummary renders a human-readable report of r.
func WriteSummary(w io.Writer, r ScoringResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "overall_score=%d, verdict=%s\n", r.OverallScore, r.Verdict)

	fmt.Fprintf(bw, "\nDimensions:\n")
	for _, d := range r.ScoresMatrix.Dimensions {
		fmt.Fprintf(bw, "  %-20s score=%3.0f  weight=%d%%\n", d.Name, d.Score, d.Weight)
	}

	writeFactors(bw, "Market Factors", r.MarketFactors)
	writeFactors(bw, "Execution Factors", r.ExecutionFactors)

	fmt.Fprintf(bw, "\nMetadata: raw_weighted_avg=%s\n", formatAverage(r.Metadata.RawWeightedAverage))

	return bw.Flush()
}

func writeFactors(w io.Writer, title string, factors []Factor) {
	if len(factors) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, f := range factors {
		fmt.Fprintf(w, "  %-20s score=%3.0f  status=%s\n", f.Name, f.Score, f.Status)
	}
}

// formatAverage prints the shortest round-trip form, keeping a ".0" on whole numbers.
func formatAverage(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
