package envelope

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Validator/internal/scoring"
)

const flatJSON = `{"problemClarity":75,"solutionStrength":60,"marketSize":70,"competition":55,"businessModel":65,"teamFit":80,"timing":70}`

const nestedJSON = `{
  "dimension_scores": {"problemClarity": 80, "teamFit": 85},
  "market_factors": [{"name": "Market Size", "score": 8, "description": "Large"}],
  "execution_factors": [{"name": "Team", "score": 3}, "junk"],
  "highlights": ["ignored"]
}`

func TestParseFlat(t *testing.T) {
	env, err := Parse([]byte(flatJSON))
	require.NoError(t, err)

	assert.Equal(t, ShapeFlat, env.Shape)
	assert.Equal(t, json.Number("75"), env.Input.Dimensions["problemClarity"])
	assert.Nil(t, env.Input.MarketFactors)
	assert.Nil(t, env.Input.ExecutionFactors)

	r := scoring.ComputeInput(env.Input)
	assert.Equal(t, 69, r.OverallScore)
	assert.Equal(t, scoring.VerdictCaution, r.Verdict)
}

func TestParseNested(t *testing.T) {
	env, err := Parse([]byte(nestedJSON))
	require.NoError(t, err)

	assert.Equal(t, ShapeNested, env.Shape)
	assert.Len(t, env.Input.Dimensions, 2)
	require.Len(t, env.Input.MarketFactors, 1)
	require.Len(t, env.Input.ExecutionFactors, 2)
	assert.Empty(t, env.Input.ExecutionFactors[1])

	r := scoring.ComputeInput(env.Input)
	assert.Equal(t, scoring.StatusStrong, r.MarketFactors[0].Status)
	assert.Equal(t, scoring.StatusWeak, r.ExecutionFactors[0].Status)
	assert.Equal(t, scoring.Factor{Score: 1, Status: scoring.StatusWeak}, r.ExecutionFactors[1])
	assert.Equal(t, 80.0, r.Metadata.ClampedDimensions["problemClarity"])
	assert.Equal(t, 0.0, r.Metadata.ClampedDimensions["timing"])
}

func TestParseNestedMalformedFields(t *testing.T) {
	env, err := Parse([]byte(`{"dimension_scores": [1,2,3], "market_factors": "none", "execution_factors": null}`))
	require.NoError(t, err)

	assert.Equal(t, ShapeNested, env.Shape)
	assert.NotNil(t, env.Input.Dimensions)
	assert.Empty(t, env.Input.Dimensions)
	assert.Nil(t, env.Input.MarketFactors)
	assert.Nil(t, env.Input.ExecutionFactors)

	r := scoring.ComputeInput(env.Input)
	assert.Equal(t, 0, r.OverallScore)
}

func TestParseFlatIgnoresFactorKeys(t *testing.T) {
	env, err := Parse([]byte(`{"problemClarity": 90, "market_factors": [{"score": 9}]}`))
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, env.Shape)
	assert.Nil(t, env.Input.MarketFactors)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"syntax", `{"problemClarity": `, nil},
		{"array", `[1, 2]`, ErrNotObject},
		{"null", `null`, ErrNotObject},
		{"number", `42`, ErrNotObject},
		{"trailing", `{} {}`, ErrTrailingData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestParseTrailingWhitespace(t *testing.T) {
	_, err := Parse([]byte("{\"timing\": 10}\n\n  "))
	assert.NoError(t, err)
}

func TestLoadInline(t *testing.T) {
	env, err := Load(flatJSON)
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, env.Shape)

	_, err = Load(`{"broken"`)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(nestedJSON), 0o600))

	env, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ShapeNested, env.Shape)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyArgument)
}
