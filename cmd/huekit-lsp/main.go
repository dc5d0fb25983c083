package main

import (
	"os"

	"github.com/jsvensson/huekit/internal/lsp"
	"github.com/spf13/cobra"
)

var (
	flagVerbose int
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "huekit-lsp",
	Short:   "Language server for huekit palette files, over stdio",
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return lsp.NewServer(version).Run(flagVerbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "log verbosity on stderr (can be repeated)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
