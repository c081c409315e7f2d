package ops

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	Simulate.Flags().String("name", "", "scenario name (required)")
	Simulate.Flags().StringArray("change", nil, "change as trainId:type[:value], e.g. train-1:hold:4m")
	_ = Simulate.MarkFlagRequired("name")
}

var Simulate = &cobra.Command{
	Use:     "simulate",
	GroupID: "ops",
	Short:   "Evaluate a what-if scenario",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		rawChanges, err := cmd.Flags().GetStringArray("change")
		if err != nil {
			return err
		}
		changes := make([]models.ScenarioChange, len(rawChanges))
		for i, raw := range rawChanges {
			if changes[i], err = parseChange(raw); err != nil {
				return err
			}
		}

		stack, err := newStack(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		result, err := stack.store.RunSimulation(cmd.Context(), models.WhatIfScenario{
			Name:    name,
			Changes: changes,
		})
		if err != nil {
			return err
		}

		fmt.Printf("scenario %s\n", result.ScenarioID)
		for kpi, projected := range result.Projected {
			fmt.Printf("  %-20s %.1f (baseline %.1f)\n", kpi, projected, result.Baseline[kpi])
		}
		for _, advice := range result.Recommendations {
			fmt.Printf("  note: %s\n", advice)
		}
		return nil
	},
}

func parseChange(raw string) (models.ScenarioChange, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return models.ScenarioChange{}, errors.New("change must be trainId:type[:value]", slog.String("change", raw))
	}
	change := models.ScenarioChange{TrainID: parts[0], Type: parts[1]}
	if len(parts) == 3 {
		change.Value = parts[2]
	}
	return change, nil
}
