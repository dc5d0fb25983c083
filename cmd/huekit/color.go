package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jsvensson/huekit"
	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagWeight float64
	flagJSON   bool
	flagSpace  string
)

var formatters = map[string]func(*huekit.Color) string{
	"hex":     (*huekit.Color).HexString,
	"rgb":     (*huekit.Color).RGBString,
	"rgba":    (*huekit.Color).RGBAString,
	"percent": (*huekit.Color).PercentString,
	"hsl":     (*huekit.Color).HSLString,
	"hsla":    (*huekit.Color).HSLAString,
	"keyword": (*huekit.Color).Keyword,
}

var formatNames = strings.Join(slices.Sorted(maps.Keys(formatters)), ", ")

func formatColor(c *huekit.Color, name string) (string, error) {
	f, ok := formatters[name]
	if !ok {
		return "", fmt.Errorf("unknown format %q (want one of %s)", name, formatNames)
	}
	if s := f(c); s != "" {
		return s, nil
	}
	// No keyword names this color.
	return c.HexString(), nil
}

func addColorCommands(root *cobra.Command) {
	inspectCmd := &cobra.Command{
		Use:   "inspect <color>",
		Short: "Show a color in every supported space",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().BoolVar(&flagJSON, "json", false, "print channel values as JSON")
	inspectCmd.Flags().StringVarP(&flagSpace, "space", "s", "", "print only the channels of one space: rgb, hsl, hsv or cmyk")

	applyCmd := &cobra.Command{
		Use:   "apply <color> <op[=arg]>...",
		Short: "Apply color operations in order",
		Long: "Apply operations such as lighten=0.2, rotate=180, mix=#fff or negate\n" +
			"to a color, left to right, and print the result.\n\nOperations: " + strings.Join(opNames(), ", "),
		Args: cobra.MinimumNArgs(2),
		RunE: runApply,
	}
	applyCmd.Flags().StringVarP(&flagFormat, "format", "f", "rgb", "output format: "+formatNames)

	contrastCmd := &cobra.Command{
		Use:   "contrast <color> <color>",
		Short: "Print the WCAG contrast ratio between two colors",
		Args:  cobra.ExactArgs(2),
		RunE:  runContrast,
	}

	mixCmd := &cobra.Command{
		Use:   "mix <color> <color>",
		Short: "Blend two colors",
		Args:  cobra.ExactArgs(2),
		RunE:  runMix,
	}
	mixCmd.Flags().Float64VarP(&flagWeight, "weight", "w", 0.5, "share of the second color, from 0 to 1")
	mixCmd.Flags().StringVarP(&flagFormat, "format", "f", "rgb", "output format: "+formatNames)

	root.AddCommand(inspectCmd, applyCmd, contrastCmd, mixCmd)
}

func parseArgs(args ...string) ([]*huekit.Color, error) {
	colors := make([]*huekit.Color, len(args))
	for i, arg := range args {
		c, err := huekit.Parse(arg)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return colors, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	colors, err := parseArgs(args[0])
	if err != nil {
		return err
	}
	c := colors[0]

	if flagSpace != "" {
		space, err := huekit.ParseSpace(flagSpace)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), channelList(c, space))
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"hex":   c.HexString(),
			"rgb":   c.RGB(),
			"hsl":   c.HSL(),
			"hsv":   c.HSV(),
			"cmyk":  c.CMYK(),
			"alpha": c.Alpha(),
		})
	}

	writeInspect(cmd.OutOrStdout(), c)
	return nil
}

// channelList renders the channels of space in order, e.g. "h=0 s=100 l=50",
// with a trailing "a=" when the color is not opaque.
func channelList(c *huekit.Color, space huekit.Space) string {
	vals := c.Values(space)
	parts := make([]string, 0, len(vals))
	for _, k := range space.Letters() {
		parts = append(parts, fmt.Sprintf("%s=%g", k, vals[k]))
	}
	if a, ok := vals["a"]; ok {
		parts = append(parts, fmt.Sprintf("a=%g", a))
	}
	return strings.Join(parts, " ")
}

func writeInspect(w io.Writer, c *huekit.Color) {
	hsv := c.HSVArray()
	cmyk := c.CMYKArray()
	keyword := c.Keyword()
	if keyword == "" {
		keyword = "-"
	}

	fmt.Fprintf(w, "hex         %s\n", c.HexString())
	fmt.Fprintf(w, "rgb         %s\n", c.RGBString())
	fmt.Fprintf(w, "hsl         %s\n", c.HSLString())
	fmt.Fprintf(w, "hsv         hsv(%g, %g%%, %g%%)\n", hsv[0], hsv[1], hsv[2])
	fmt.Fprintf(w, "cmyk        cmyk(%g%%, %g%%, %g%%, %g%%)\n", cmyk[0], cmyk[1], cmyk[2], cmyk[3])
	fmt.Fprintf(w, "alpha       %g\n", c.Alpha())
	fmt.Fprintf(w, "keyword     %s\n", keyword)
	fmt.Fprintf(w, "luminosity  %.4f\n", c.Luminosity())
	fmt.Fprintf(w, "contrast    %.2f:1 on white, %.2f:1 on black\n",
		c.Contrast(huekit.FromRGB(255, 255, 255)), c.Contrast(huekit.FromRGB(0, 0, 0)))
}

func runApply(cmd *cobra.Command, args []string) error {
	colors, err := parseArgs(args[0])
	if err != nil {
		return err
	}
	c := colors[0]

	if err := applyOps(c, args[1:]); err != nil {
		return err
	}

	text, err := formatColor(c, flagFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// op applies one named operation. arg is empty for operations that take none.
type op struct {
	needsArg bool
	apply    func(c *huekit.Color, arg string) error
}

func ratioOp(fn func(*huekit.Color, float64) *huekit.Color) op {
	return op{needsArg: true, apply: func(c *huekit.Color, arg string) error {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", arg)
		}
		fn(c, v)
		return nil
	}}
}

var ops = map[string]op{
	"lighten":    ratioOp((*huekit.Color).Lighten),
	"darken":     ratioOp((*huekit.Color).Darken),
	"saturate":   ratioOp((*huekit.Color).Saturate),
	"desaturate": ratioOp((*huekit.Color).Desaturate),
	"rotate":     ratioOp((*huekit.Color).Rotate),
	"clearer":    ratioOp((*huekit.Color).Clearer),
	"opaquer":    ratioOp((*huekit.Color).Opaquer),
	"alpha":      ratioOp((*huekit.Color).SetAlpha),
	"negate": {apply: func(c *huekit.Color, _ string) error {
		c.Negate()
		return nil
	}},
	"greyscale": {apply: func(c *huekit.Color, _ string) error {
		c.Greyscale()
		return nil
	}},
	// mix=<color> or mix=<color>@<weight>
	"mix": {needsArg: true, apply: func(c *huekit.Color, arg string) error {
		text, weight := arg, 0.5
		if i := strings.LastIndex(arg, "@"); i >= 0 {
			w, err := strconv.ParseFloat(arg[i+1:], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", arg[i+1:])
			}
			text, weight = arg[:i], w
		}
		other, err := huekit.Parse(text)
		if err != nil {
			return err
		}
		c.MixWeight(other, weight)
		return nil
	}},
}

func opNames() []string {
	return slices.Sorted(maps.Keys(ops))
}

// applyOps runs each "name" or "name=arg" operation on c in order.
func applyOps(c *huekit.Color, specs []string) error {
	for _, spec := range specs {
		name, arg, hasArg := strings.Cut(spec, "=")
		o, ok := ops[name]
		if !ok {
			return fmt.Errorf("unknown operation %q", name)
		}
		if o.needsArg != hasArg {
			if o.needsArg {
				return fmt.Errorf("%s: missing argument", name)
			}
			return fmt.Errorf("%s: takes no argument", name)
		}
		if err := o.apply(c, arg); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func runContrast(cmd *cobra.Command, args []string) error {
	colors, err := parseArgs(args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.2f:1\n", colors[0].Contrast(colors[1]))
	return nil
}

func runMix(cmd *cobra.Command, args []string) error {
	if flagWeight < 0 || flagWeight > 1 {
		return fmt.Errorf("weight must be between 0 and 1, got %g", flagWeight)
	}
	colors, err := parseArgs(args...)
	if err != nil {
		return err
	}

	text, err := formatColor(colors[0].MixWeight(colors[1], flagWeight), flagFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
