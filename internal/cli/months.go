package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMonthsCmd(g *globals) *cobra.Command {
	var flags rangeFlags
	cmd := &cobra.Command{
		Use:   "months",
		Short: "List monthly totals for a room, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			builder, store, err := g.openBuilder()
			if err != nil {
				return err
			}
			defer store.Close()

			months, currency, err := builder.Months(cmd.Context(), req)
			if err != nil {
				return err
			}
			if len(months) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tTOTAL\tCOUNT")
			for _, m := range months {
				fmt.Fprintf(w, "%s\t%s\t%d\n", m.Key, currency.Format(m.Total), m.Count)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	return cmd
}
