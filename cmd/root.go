package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/research-reader/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "reader",
	Short: "Browse, search and read AI-summarized research articles",
	Long: `Reader is the front end of the research summarization service. It serves
a web interface for browsing topics, searching documents and reading
structured article summaries with a per-article Q&A assistant, and it
exposes the same library on the command line and to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
