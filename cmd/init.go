package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/research-reader/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize reader configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the backend URL, port and data directory and writes a .reader.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (backend %s, port %d)\n", cfgFile, cfg.BackendURL, cfg.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
