package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"loadbench/internal/app"
	"loadbench/internal/shared/configs"
)

func main() {
	var (
		configPath string
		options    []string
		ignoreLock bool
	)

	rootCmd := &cobra.Command{
		Use:           "loadbench",
		Short:         "Load testing tool with streaming per-second aggregation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a load test run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides, err := configs.ParseOverrides(options)
			if err != nil {
				return err
			}

			cfg, err := configs.LoadConfig(configPath, overrides)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			application, err := app.New(cfg, ignoreLock)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			os.Exit(application.Run(ctx))
			return nil
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "./configs/configs.yml", "path to the configuration file")
	runCmd.Flags().StringArrayVarP(&options, "option", "o", nil, "config override as key=value (repeatable, e.g. -o pipeline.cache_size=10)")
	runCmd.Flags().BoolVar(&ignoreLock, "ignore-lock", false, "skip the run lock (concurrent runs may interfere)")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
