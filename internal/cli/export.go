package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/roomledger/internal/export"
)

func newExportCmd(g *globals) *cobra.Command {
	var (
		flags  rangeFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a room report as an XLSX or PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			req, err := flags.request()
			if err != nil {
				return err
			}
			builder, store, err := g.openBuilder()
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := builder.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			data, err := export.Build(f, r)
			if err != nil {
				return err
			}

			if out == "" {
				out = export.Filename(f, r)
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Output format: xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: derived from room and period)")
	return cmd
}
