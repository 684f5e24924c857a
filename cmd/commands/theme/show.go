package theme

import (
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/staffdesk/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active theme and its palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := openShell()
			if err != nil {
				return err
			}
			defer sh.Close()

			saved, err := config.NewThemeStore().Get()
			if err != nil {
				return err
			}
			source := "terminal background"
			if saved != "" {
				source = "saved"
			}

			t := sh.Theme()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Mode:\t%s (%s)\n", t.Mode, source)
			fmt.Fprintf(w, "Primary:\t%s\n", swatch(t.Palette.Primary))
			fmt.Fprintf(w, "Background:\t%s\n", swatch(t.Palette.Background))
			fmt.Fprintf(w, "Paper:\t%s\n", swatch(t.Palette.Paper))
			fmt.Fprintf(w, "Text:\t%s\n", swatch(t.Palette.Text))
			fmt.Fprintf(w, "Highlight:\t%s\n", swatch(t.Palette.Highlight))
			fmt.Fprintf(w, "Font:\t%s\n", t.Typography.FontFamily)
			return w.Flush()
		},
		SilenceUsage: true,
	}

	return cmd
}

func swatch(c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render("██") + " " + string(c)
}
