package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/huekit"
	"github.com/jsvensson/huekit/internal/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagVerbose   int
	flagPalette   string
	flagOut       string
	flagTemplates string
	flagApp       []string
	flagCheck     bool
	flagList      string
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "huekit",
	Short:   "Inspect and transform colors, and render palettes into application themes",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate files from templates",
	RunE:  runGenerate,
}

var paletteCmd = &cobra.Command{
	Use:   "palette <file>",
	Short: "List every color in a palette file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalette,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format palette files",
	Long:  "Format one or more palette files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log verbosity (can be repeated)")
	generateCmd.Flags().StringVar(&flagPalette, "palette", "palette.hcl", "path to palette HCL file")
	generateCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "generate only for specific apps (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	paletteCmd.Flags().StringVarP(&flagList, "format", "f", "hex", "output format: "+formatNames)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
	addColorCommands(rootCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := huekit.Load(flagPalette)
	if err != nil {
		return err
	}

	e := &huekit.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Apps:         flagApp,
	}

	if err := e.Run(p); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated files in %s\n", flagOut)
	return nil
}

func runPalette(cmd *cobra.Command, args []string) error {
	p, err := huekit.Load(args[0])
	if err != nil {
		return err
	}

	swatches := p.Flatten()
	width := 0
	for _, s := range swatches {
		width = max(width, len(s.Name))
	}
	for _, s := range swatches {
		text, err := formatColor(s.Color, flagList)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, s.Name, text)
	}
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
