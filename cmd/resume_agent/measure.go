package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-pagefit/internal/config"
	"github.com/jonathan/resume-pagefit/internal/validation"
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Report how many Letter pages an HTML resume prints to",
	Long:  "Renders an HTML file in headless Chrome, prints it on Letter paper and reports the page count. Requires Chrome/Chromium.",
	RunE:  runMeasure,
}

var (
	measureInput   string
	measureTimeout int
)

func init() {
	measureCmd.Flags().StringVarP(&measureInput, "input", "i", "", "Path to HTML file (required)")
	measureCmd.Flags().IntVar(&measureTimeout, "timeout", config.DefaultMeasureTimeoutSeconds, "Seconds allowed for the measurement")

	if err := measureCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(measureCmd)
}

func runMeasure(_ *cobra.Command, _ []string) error {
	markup, err := os.ReadFile(measureInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	cfg := config.Config{MeasureTimeoutSeconds: measureTimeout}
	measurer := validation.NewChromeMeasurer(cfg.MeasureTimeout(), logger)
	fit, err := measurer.Measure(context.Background(), string(markup))
	if err != nil {
		return fmt.Errorf("failed to measure document: %w", err)
	}

	data, err := json.MarshalIndent(fit, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}
