package hermes

const (
	StreamName   = "VALIDATOR_EVENTS"
	StreamMaxAge = "720h" // 30 days

	// SubjectCalibrationUpdatedAll matches every calibration update.
	SubjectCalibrationUpdatedAll = "validator.calibration.*.updated"
)

func SubjectScoreComputed(scoreID string) string { return "validator.score." + scoreID + ".computed" }

func SubjectCalibrationUpdated(name string) string {
	return "validator.calibration." + name + ".updated"
}
