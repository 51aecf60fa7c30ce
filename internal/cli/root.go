// Package cli implements the roomctl command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/roomledger/internal/config"
	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/report"
	"github.com/mmynk/roomledger/internal/storage/sqlite"
	"github.com/mmynk/roomledger/pkg/logging"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configFile string
	dbPath     string
}

// NewRootCommand builds the roomctl command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "roomctl",
		Short: "Inspect room expense reports from the command line",
		Long: `roomctl reads a roomledger database directly and prints balances,
settlements and summaries, or renders them as XLSX/PDF documents.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "Path to a TOML config file")
	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "Database path (overrides config and DB_PATH)")

	root.AddCommand(
		newReportCmd(g),
		newMonthsCmd(g),
		newExportCmd(g),
		newMigrateCmd(g),
	)
	return root
}

// Execute runs roomctl with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (g *globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.configFile)
	if err != nil {
		return nil, err
	}
	if g.dbPath != "" {
		cfg.Database.Path = g.dbPath
	}
	if err := logging.Setup(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openBuilder opens the store named by the config. The caller closes it.
func (g *globals) openBuilder() (*report.Builder, *sqlite.SQLiteStore, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return report.NewBuilder(store, nil, cfg.Currency()), store, nil
}

// rangeFlags holds the --room/--from/--to flags of report-style commands.
type rangeFlags struct {
	room string
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.room, "room", "", "Room ID (required)")
	cmd.Flags().StringVar(&f.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last day to include (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("room")
}

func (f *rangeFlags) request() (report.Request, error) {
	req := report.Request{RoomID: f.room}
	var err error
	if f.from != "" {
		if req.From, err = models.ParseDate(f.from); err != nil {
			return req, fmt.Errorf("--from: %w", err)
		}
	}
	if f.to != "" {
		if req.To, err = models.ParseDate(f.to); err != nil {
			return req, fmt.Errorf("--to: %w", err)
		}
	}
	return req, nil
}
