package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/motif/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server readiness, and auth",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor() error {
	cfgPath, cfg, cfgErr := loadConfigFile()
	url, apiKey := resolveSettings(flagURL, flagKey, cfg)

	results := []checkResult{{Name: "Config file", Passed: cfgErr == nil, Detail: cfgPath, Hint: "Run: motif init"}}
	keyCheck := checkResult{Name: "API key", Passed: true, Detail: "configured"}
	if apiKey == "" {
		keyCheck = checkResult{Name: "API key", Detail: "missing", Hint: "Set --api-key, MOTIF_API_KEY, or run motif init"}
	}
	results = append(results, keyCheck)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := client.New(url, client.WithAPIKey(apiKey), client.WithTimeout(5*time.Second))
	results = append(results, doctorChecks(ctx, c, url, apiKey != "")...)

	allPassed := true
	for _, r := range results {
		if r.Passed {
			fmt.Printf("ok   %s: %s\n", r.Name, r.Detail)
			continue
		}
		allPassed = false
		fmt.Printf("FAIL %s: %s\n", r.Name, r.Detail)
		if r.Hint != "" {
			fmt.Printf("     hint: %s\n", r.Hint)
		}
	}

	if !allPassed {
		return fmt.Errorf("doctor found issues")
	}
	fmt.Println("All checks passed.")
	return nil
}

// doctorChecks probes liveness, readiness and authentication in order,
// stopping at the first unreachable step.
func doctorChecks(ctx context.Context, c *client.Client, url string, haveKey bool) []checkResult {
	health, err := c.Health(ctx)
	if err != nil {
		return []checkResult{{Name: "Server reachable", Detail: url, Hint: fmt.Sprintf("Is motifd running? %v", err)}}
	}
	results := []checkResult{{
		Name: "Server reachable", Passed: true,
		Detail: fmt.Sprintf("%s (version %s, schema %d)", url, health.Version, health.SchemaVersion),
	}}

	if ready, err := c.Ready(ctx); err != nil {
		results = append(results, checkResult{Name: "Server ready", Detail: err.Error(), Hint: "Check the database connection and migrations"})
	} else {
		results = append(results, checkResult{Name: "Server ready", Passed: true, Detail: ready.Status})
	}

	if !haveKey {
		return results
	}
	if _, err := c.Motifs.History(ctx, 1); err != nil {
		results = append(results, checkResult{Name: "Authentication", Detail: err.Error(), Hint: "Check your API key"})
	} else {
		results = append(results, checkResult{Name: "Authentication", Passed: true, Detail: "valid"})
	}
	return results
}
