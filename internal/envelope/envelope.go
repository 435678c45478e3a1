// Package envelope decodes scoring requests into the engine's canonical input.
//
// Two shapes are accepted. A nested envelope carries a "dimension_scores"
// object alongside "market_factors" and "execution_factors" lists; any other
// object is read as a flat map of dimension scores with no factors. The shape
// is decided once here and never inspected by the engine.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MikeSquared-Agency/Validator/internal/scoring"
)

// Shape identifies which envelope form was parsed.
type Shape string

const (
	ShapeFlat   Shape = "flat"
	ShapeNested Shape = "nested"
)

const (
	keyDimensionScores  = "dimension_scores"
	keyMarketFactors    = "market_factors"
	keyExecutionFactors = "execution_factors"
)

var (
	ErrNotObject     = errors.New("input must be a JSON object")
	ErrTrailingData  = errors.New("unexpected data after JSON object")
	ErrEmptyArgument = errors.New("empty input argument")
)

// Envelope is the parsed request: its shape and the canonical engine input.
type Envelope struct {
	Shape Shape
	Input scoring.Input
}

// Parse decodes data into an Envelope. Only malformed JSON or a non-object
// top level is an error; malformed fields are left for the engine to default.
func Parse(data []byte) (Envelope, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return Envelope{}, err
	}

	nested, ok := obj[keyDimensionScores]
	if !ok {
		return Envelope{
			Shape: ShapeFlat,
			Input: scoring.Input{Dimensions: scoring.RawDimensions(obj)},
		}, nil
	}

	return Envelope{
		Shape: ShapeNested,
		Input: scoring.Input{
			Dimensions:       scoring.RawDimensions(asObject(nested)),
			MarketFactors:    asFactors(obj[keyMarketFactors]),
			ExecutionFactors: asFactors(obj[keyExecutionFactors]),
		},
	}, nil
}

// Load reads arg as inline JSON when it starts with '{', otherwise as a path to a JSON file.
func Load(arg string) (Envelope, error) {
	if arg == "" {
		return Envelope{}, ErrEmptyArgument
	}
	if strings.HasPrefix(arg, "{") {
		env, err := Parse([]byte(arg))
		if err != nil {
			return Envelope{}, fmt.Errorf("parse inline json: %w", err)
		}
		return env, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return Envelope{}, fmt.Errorf("read input file: %w", err)
	}
	env, err := Parse(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("parse %s: %w", arg, err)
	}
	return env, nil
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// asFactors keeps list length and order; non-object entries become empty factors.
func asFactors(v any) []scoring.RawFactor {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]scoring.RawFactor, 0, len(list))
	for _, item := range list {
		out = append(out, scoring.RawFactor(asObject(item)))
	}
	return out
}
