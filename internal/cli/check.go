package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"accessible-palette/internal/colormath"
	"accessible-palette/internal/palette"
	"accessible-palette/internal/ui"
)

// WCAG success criterion thresholds
const (
	ratioAA      = 4.5
	ratioAALarge = 3.0
	ratioAAA     = 7.0
)

var errBelowTarget = errors.New("contrast below target")

func newCheckCmd() *cobra.Command {
	var target float64

	cmd := &cobra.Command{
		Use:   "check FOREGROUND BACKGROUND",
		Short: "Report the contrast ratio of two colors",
		Long: `Report the WCAG contrast ratio of a text and background color and which
levels it passes. Exits non-zero when the ratio is below --ratio.

Examples:
  palette check "#767676" "#ffffff"
  palette check 777777 ffffff --ratio 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := colormath.HexContrast(args[0], args[1])
			if err != nil {
				return err
			}
			// both parsed above, so neither can fail
			text, _ := colormath.Normalize(args[0])
			bg, _ := colormath.Normalize(args[1])

			fmt.Fprint(cmd.OutOrStdout(), ui.RenderKeyValues([][2]string{
				{"Text", text},
				{"Background", bg},
				{"Ratio", ui.Bold("%.2f:1", ratio)},
				{"AA", verdict(ratio, ratioAA)},
				{"AA large", verdict(ratio, ratioAALarge)},
				{"AAA", verdict(ratio, ratioAAA)},
				{"AAA large", verdict(ratio, ratioAA)},
				{"Sample", ui.Swatch(bg, text, " Aa ")},
			}))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("  See ")+ui.FormatDocsLink("contrast-minimum", "WCAG 1.4.3 Contrast (Minimum)"))

			if ratio < target {
				if hex, r, ok := suggestText(bg, target); ok {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("  Try ")+ui.Swatch(bg, hex, hex)+ui.Muted(" (%.2f:1)", r))
				}
				return fmt.Errorf("%w: %.2f:1 < %.2f:1", errBelowTarget, ratio, target)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&target, "ratio", "r", palette.DefaultContrastRatio, "Required contrast ratio")
	return cmd
}

// suggestText finds the least extreme gray that reaches target on bg,
// searching from whichever of black and white contrasts more
func suggestText(bg string, target float64) (string, float64, bool) {
	c, err := colormath.HexToRGB(bg)
	if err != nil {
		return "", 0, false
	}
	c = c.Round()

	from, toward := colormath.Black, colormath.White
	if colormath.Contrast(c, colormath.White) > colormath.Contrast(c, colormath.Black) {
		from, toward = toward, from
	}
	text, ratio, ok := palette.SearchText(c, from, toward, target)
	return text.Hex(), ratio, ok
}

func verdict(ratio, need float64) string {
	if ratio >= need {
		return ui.Success("pass")
	}
	return ui.Error("fail") + ui.Muted(" (needs %.1f:1)", need)
}
