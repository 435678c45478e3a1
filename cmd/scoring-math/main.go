package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Validator/internal/envelope"
	"github.com/MikeSquared-Agency/Validator/internal/logging"
	"github.com/MikeSquared-Agency/Validator/internal/scoring"
)

func main() {
	if err := rootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		biasCorrection float64
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "scoring-math <json-or-file>",
		Short: "Score a startup idea across the seven weighted dimensions",
		Long: `Reads a scoring envelope as inline JSON (when the argument starts with '{')
or from a file, and prints a summary followed by the full result as JSON.`,
		Example: `  scoring-math '{"problemClarity":75,"solutionStrength":60,"marketSize":70,"competition":55,"businessModel":65,"teamFit":80,"timing":70}'
  scoring-math --bias-correction -5 input.json`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if math.IsNaN(biasCorrection) || math.IsInf(biasCorrection, 0) {
				return fmt.Errorf("--bias-correction must be a finite number")
			}
			logger := logging.New(stderr, logLevel, logging.FormatCLI)
			return run(stdout, args[0], biasCorrection, scoring.NewScorer(logger))
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().Float64Var(&biasCorrection, "bias-correction", 0, "points added to the weighted average before clamping")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	return cmd
}

func run(w io.Writer, arg string, biasCorrection float64, scorer *scoring.Scorer) error {
	env, err := envelope.Load(arg)
	if err != nil {
		return err
	}
	env.Input.BiasCorrection = biasCorrection

	result := scorer.Score(env.Input)

	if err := scoring.WriteSummary(w, result); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintf(w, "\n--- JSON ---\n%s\n", out)
	return err
}
