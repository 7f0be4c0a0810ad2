package commands

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/am"
	"github.com/teranos/satgraph/db"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/internal/util"
	"github.com/teranos/satgraph/logger"
	"github.com/teranos/satgraph/sat"
)

// Set by initCommand
var (
	activeConfig    *am.Config
	activeVerbosity int
)

func config() *am.Config {
	if activeConfig == nil {
		activeConfig = &am.Config{}
	}
	return activeConfig
}

// newParser builds a parser from configuration, letting --workers override it
func newParser(cmd *cobra.Command, extra ...sat.Option) *sat.Parser {
	opts := config().ParserOptions()
	if f := cmd.Flags().Lookup("workers"); f != nil && f.Changed {
		n, _ := cmd.Flags().GetInt("workers")
		opts = append(opts, sat.WithWorkers(n))
	}
	if logger.ShouldLogTrace(activeVerbosity) {
		// -vvv logs skipped records in full
		opts = append(opts, sat.WithPreviewLength(math.MaxInt32))
	}
	opts = append(opts, sat.WithLogger(logger.ComponentLogger("sat.parser")))
	return sat.NewParser(append(opts, extra...)...)
}

func parseFile(cmd *cobra.Command, path string, extra ...sat.Option) (*sat.Document, error) {
	doc, err := newParser(cmd, extra...).Parse(cmd.Context(), path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return doc, nil
}

// openDatabase opens and migrates the configured database, or dbPath when given
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		dbPath = config().GetDatabasePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.ComponentLogger("db"))
	if err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(err, "failed to open database at %s", dbPath),
			"set database.path in satgraph.toml or SATGRAPH_DATABASE_PATH")
	}
	return database, nil
}

func parseIndex(arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 {
		return 0, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRequest, "entity index %q", arg),
			"use the number after the leading '-' of a record, e.g. 5 for -5")
	}
	return idx, nil
}

// formatRef renders a reference the way SAT writes it, $-1 for none
func formatRef(target *int) string {
	return fmt.Sprintf("$%d", util.Value(target, -1))
}

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func addWorkersFlag(cmd *cobra.Command) {
	cmd.Flags().Int("workers", 0, "Concurrent record dispatchers (default from parser.workers)")
}
