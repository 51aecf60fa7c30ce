package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/roomledger/internal/calculator"
	"github.com/mmynk/roomledger/internal/report"
	"github.com/mmynk/roomledger/internal/service"
)

func newReportCmd(g *globals) *cobra.Command {
	var (
		flags  rangeFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print balances, settlements and category totals for a room",
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

			r, err := builder.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(service.ReportToAPI(r))
			}
			return printReport(cmd.OutOrStdout(), r)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func printReport(out io.Writer, r *report.Report) error {
	c := r.Currency
	period := "all time"
	if !r.From.IsZero() || !r.To.IsZero() {
		period = fmt.Sprintf("%s .. %s", orDots(r.From.String()), orDots(r.To.String()))
	}

	fmt.Fprintf(out, "Room:   %s (%s)\n", r.Room.Name, c.Code)
	fmt.Fprintf(out, "Period: %s\n", period)
	fmt.Fprintf(out, "Total:  %s over %d transactions\n", c.Format(r.GrandTotal), r.RecordCount)
	if r.Warning != nil {
		fmt.Fprintf(out, "Warning: %v\n", r.Warning)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(out)
	fmt.Fprintln(w, "PARTICIPANT\tPAID\tOWED\tNET\t")
	for _, b := range calculator.SortByNet(r.Balances) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", b.DisplayName, c.Format(b.Paid), c.Format(b.Owed), c.Format(b.Net))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if len(r.Settlements) == 0 {
		fmt.Fprintln(out, "Everyone is settled up.")
	} else {
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FROM\tTO\tAMOUNT")
		for _, s := range r.Settlements {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.FromName, s.ToName, c.Format(s.Amount))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(r.Categories) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tTOTAL\tCOUNT\tSHARE")
		for _, cs := range r.Categories {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.1f%%\n", cs.Category.Name, c.Format(cs.Total), cs.Count, cs.Share*100)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func orDots(s string) string {
	if s == "" {
		return "..."
	}
	return s
}
