package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/garderoba/internal/config"
	"github.com/erazemk/garderoba/internal/desk"
	"github.com/erazemk/garderoba/internal/sheet"
)

// app holds what a single invocation opens: the config, the store handle and
// the desk working on it.
type app struct {
	v          *viper.Viper
	configFile string
	jsonOutput bool
	verbose    bool

	cfg      config.Config
	store    *sheet.Store
	desk     *desk.Desk
	closeLog func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "garderoba",
		Short: "Cloakroom inventory tracker",
		Long: `garderoba registers people from form responses, stores their items
in numbered cells and records when the items are picked up again.

Data lives in a spreadsheet-shaped store: a SQLite database or an XLSX
workbook, selected with --backend and --document or the GARDEROBA_*
environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml)")
	flags.String("backend", "", "store backend: sqlite, xlsx or memory (default sqlite)")
	flags.StringP("document", "d", "", "database or workbook path (default garderoba.sqlite3)")
	flags.StringP("log", "l", "", "log file path (default: no file)")
	flags.BoolVar(&a.jsonOutput, "json", false, "output as JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")

	root.CompletionOptions.DisableDefaultCmd = true

	_ = a.v.BindPFlag(config.KeyBackend, flags.Lookup("backend"))
	_ = a.v.BindPFlag(config.KeyDocument, flags.Lookup("document"))
	_ = a.v.BindPFlag(config.KeyLogFile, flags.Lookup("log"))

	root.AddCommand(
		a.initCmd(),
		a.intakeCmd(),
		a.responsesCmd(),
		a.depositCmd(),
		a.pickupCmd(),
		a.itemCmd(),
		a.itemsCmd(),
		a.personCmd(),
		a.peopleCmd(),
		a.cellCmd(),
		a.cellsCmd(),
		a.dumpCmd(),
	)
	return root
}

// open loads the configuration, sets up logging and opens the store.
func (a *app) open(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	info := cmd.OutOrStdout()
	if a.jsonOutput {
		info = cmd.ErrOrStderr()
	}
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.closeLog, err = setupLogger(info, cmd.ErrOrStderr(), cfg.LogFile, level)
	if err != nil {
		return err
	}

	s, err := sheet.Open(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.store = s
	a.desk = &desk.Desk{Store: s}
	return nil
}

// closeStore releases the store. It is safe to call more than once.
func (a *app) closeStore() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// closeLogFile closes the log file, if one was opened.
func (a *app) closeLogFile() {
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
}
