package main

import (
	"fmt"
	"os"

	"github.com/NgigiN/momo/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	envFile string
	cfg     *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "momo",
		Short:         "MoMo SMS transactions API",
		Long:          "momo serves CRUD and search operations over transactions parsed from MoMo SMS messages.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
