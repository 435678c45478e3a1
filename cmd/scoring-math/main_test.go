package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Validator/internal/scoring"
)

const sampleFlat = `{"problemClarity":75,"solutionStrength":60,"marketSize":70,"competition":55,"businessModel":65,"teamFit":80,"timing":70}`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func splitOutput(t *testing.T, out string) (string, scoring.ScoringResult) {
	t.Helper()
	summary, js, ok := strings.Cut(out, "\n--- JSON ---\n")
	require.True(t, ok, out)
	var result scoring.ScoringResult
	require.NoError(t, json.Unmarshal([]byte(js), &result))
	return summary, result
}

func TestInlineJSON(t *testing.T) {
	out, _, err := execute(t, sampleFlat)
	require.NoError(t, err)

	summary, result := splitOutput(t, out)
	assert.True(t, strings.HasPrefix(summary, "overall_score=69, verdict=caution\n"), summary)
	assert.Contains(t, summary, "Metadata: raw_weighted_avg=68.5\n")
	assert.Equal(t, 69, result.OverallScore)
	assert.Equal(t, scoring.VerdictCaution, result.Verdict)
	assert.Equal(t, 68.5, result.Metadata.RawWeightedAverage)
}

func TestJSONIsIndented(t *testing.T) {
	out, _, err := execute(t, sampleFlat)
	require.NoError(t, err)
	assert.Contains(t, out, "--- JSON ---\n{\n  \"overall_score\": 69,")
}

func TestFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	body := `{
		"dimension_scores": {"problemClarity": 80, "solutionStrength": 80, "marketSize": 80,
			"competition": 80, "businessModel": 80, "teamFit": 80, "timing": 80},
		"market_factors": [{"name": "Demand", "score": 9}],
		"execution_factors": []
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, _, err := execute(t, path)
	require.NoError(t, err)

	summary, result := splitOutput(t, out)
	assert.Equal(t, 80, result.OverallScore)
	assert.Equal(t, scoring.VerdictGo, result.Verdict)
	require.Len(t, result.MarketFactors, 1)
	assert.Equal(t, scoring.StatusStrong, result.MarketFactors[0].Status)
	assert.NotNil(t, result.ExecutionFactors)
	assert.Contains(t, summary, "Market Factors:")
	assert.NotContains(t, summary, "Execution Factors:")
}

func TestBiasCorrectionFlag(t *testing.T) {
	out, _, err := execute(t, "--bias-correction", "-20", sampleFlat)
	require.NoError(t, err)

	_, result := splitOutput(t, out)
	assert.Equal(t, 49, result.OverallScore)
	assert.Equal(t, scoring.VerdictNoGo, result.Verdict)
	assert.Equal(t, -20.0, result.Metadata.BiasCorrection)
	assert.Equal(t, 68.5, result.Metadata.RawWeightedAverage)
}

func TestBiasCorrectionRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		out, _, err := execute(t, "--bias-correction", v, sampleFlat)
		assert.Error(t, err, v)
		assert.Empty(t, out)
	}
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	out, _, err := execute(t)
	assert.Error(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "scoring-math <json-or-file>")
}

func TestTooManyArguments(t *testing.T) {
	_, _, err := execute(t, sampleFlat, sampleFlat)
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	out, _, err := execute(t, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotContains(t, out, "Usage:")
}

func TestMalformedInline(t *testing.T) {
	_, _, err := execute(t, `{"problemClarity":`)
	assert.Error(t, err)
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	out, errOut, err := execute(t, "--log-level", "debug", sampleFlat)
	require.NoError(t, err)
	assert.Contains(t, errOut, "score computed")
	assert.NotContains(t, out, "score computed")
}
