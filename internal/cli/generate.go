package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"accessible-palette/internal/colormath"
	"accessible-palette/internal/palette"
	"accessible-palette/internal/ui"
)

func newGenerateCmd() *cobra.Command {
	var (
		cfg        palette.Config
		ratio      float64
		variations int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a palette from a base color",
		Long: `Generate light and dark variations of a base color, each paired with the
least extreme text color that reaches the contrast ratio.

Examples:
  palette generate --base "#007ACC"
  palette generate --base 007acc --ratio 7 --variations 3
  palette generate --base "#007ACC" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// flags left unset fall through to the generator defaults
			if cmd.Flags().Changed("ratio") {
				cfg.ContrastRatio = &ratio
			}
			if cmd.Flags().Changed("variations") {
				cfg.Variations = &variations
			}

			p, err := palette.Generate(cfg)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			writePalette(cmd.OutOrStdout(), p)
			ui.PrintFooter("Text colors are the least extreme that reach the target ratio")
			if !p.Compliant() {
				ui.WarningNote(fmt.Sprintf("%d of %d pairs fall short of %.2f:1. The closest text color is shown.",
					len(p.Shortfalls), len(p.Pairs()), p.Target))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.BaseColor, "base", "b", "", "Base color as 6-digit hex")
	cmd.Flags().Float64VarP(&ratio, "ratio", "r", palette.DefaultContrastRatio, "Minimum contrast ratio")
	cmd.Flags().IntVarP(&variations, "variations", "n", palette.DefaultVariations, "Variations per tone")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the palette as JSON")
	cmd.MarkFlagRequired("base")

	return cmd
}

// writePalette prints one table row per background/text pair
func writePalette(w io.Writer, p *palette.Palette) {
	short := make(map[palette.Pair]bool, len(p.Shortfalls))
	for _, sf := range p.Shortfalls {
		short[palette.Pair{Tone: sf.Tone, Index: sf.Index, Background: sf.Background, Text: sf.Text}] = true
	}

	rows := make([][]string, 0, len(p.Light)+len(p.Dark))
	for _, pair := range p.Pairs() {
		ratio, _ := colormath.HexContrast(pair.Background, pair.Text)
		cell := ui.Success("%.2f", ratio)
		if short[pair] {
			cell = ui.Error("%.2f", ratio)
		}
		rows = append(rows, []string{
			string(pair.Tone),
			strconv.Itoa(pair.Index + 1),
			pair.Background,
			pair.Text,
			cell,
			ui.Swatch(pair.Background, pair.Text, " Aa "),
		})
	}

	fmt.Fprintln(w, ui.Heading("Palette for %s", p.Base)+ui.AccentDim(" (target %.2f:1)", p.Target))
	fmt.Fprint(w, ui.RenderTable(ui.RenderTableOptions{
		Columns: []ui.TableColumn{
			{Header: "Tone"},
			{Header: "#", Align: ui.AlignRight},
			{Header: "Background"},
			{Header: "Text"},
			{Header: "Ratio", Align: ui.AlignRight},
			{Header: "Sample", Align: ui.AlignCenter},
		},
		Rows: rows,
	}))
}
