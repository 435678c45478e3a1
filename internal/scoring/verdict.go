package scoring

// Verdict is the three-way classification of an overall score.
type Verdict string

const (
	VerdictGo      Verdict = "go"
	VerdictCaution Verdict = "caution"
	VerdictNoGo    Verdict = "no_go"
)

// Verdict band lower bounds, inclusive.
const (
	GoThreshold      = 75
	CautionThreshold = 50
)

// VerdictFor maps an overall score in [0, 100] to a verdict.
func VerdictFor(score int) Verdict {
	switch {
	case score >= GoThreshold:
		return VerdictGo
	case score >= CautionThreshold:
		return VerdictCaution
	default:
		return VerdictNoGo
	}
}
