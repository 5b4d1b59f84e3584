package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/motif/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagKey   string
	flagFmt   string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("motif version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("motif version %s-dev", version)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "motif",
		Short:   "Motif CLI: find pattern graphs inside larger graphs",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			var opts []client.Option
			if flagKey != "" {
				opts = append(opts, client.WithAPIKey(flagKey))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "motifd server URL (env: MOTIF_URL)")
	rootCmd.PersistentFlags().StringVar(&flagKey, "api-key", "", "API key (env: MOTIF_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	// These never talk to the configured server through apiClient.
	skipClient := func(cmd *cobra.Command, args []string) {}
	initCmd := newInitCmd()
	initCmd.PersistentPreRun = skipClient
	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = skipClient
	localCmd := newLocalCmd()
	localCmd.PersistentPreRun = skipClient

	rootCmd.AddCommand(initCmd, doctorCmd, localCmd)
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newCountCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newHostCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
