package cli

import (
	"os"

	"github.com/spf13/cobra"

	"accessible-palette/internal/ui"
)

// version is set at build time with -ldflags "-X accessible-palette/internal/cli.version=..."
var version = "dev"

const tagline = "Accessible color palettes that meet WCAG contrast"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "palette",
		Short: "Generate accessible color palettes",
		Long: `palette builds light and dark variations of a base color and pairs each
one with a text color that meets a WCAG contrast ratio.

Use it from the terminal or run it as an HTTP service.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newHashKeyCmd())
	return root
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}
}
