package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/db"
	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Store parsed files in SQLite",
	Long: `Import parsed SAT files into the SQLite store and query them.

Examples:
  satgraph db import part.sat other.sat
  satgraph db stats
  satgraph db entity <file-id> 5`,
}

var dbImportCmd = &cobra.Command{
	Use:   "import <file.sat>...",
	Short: "Parse files and store their entities",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDbImport,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored files and entity counts",
	Args:  cobra.NoArgs,
	RunE:  runDbStats,
}

var dbEntityCmd = &cobra.Command{
	Use:   "entity <file-id> <index>",
	Short: "Show a stored entity and the links pointing at it",
	Args:  cobra.ExactArgs(2),
	RunE:  runDbEntity,
}

func init() {
	DbCmd.PersistentFlags().String("db", "", "Database path (default from database.path)")
	addWorkersFlag(dbImportCmd)

	DbCmd.AddCommand(dbImportCmd)
	DbCmd.AddCommand(dbStatsCmd)
	DbCmd.AddCommand(dbEntityCmd)
}

func openStore(cmd *cobra.Command) (*db.Store, func(), error) {
	path, _ := cmd.Flags().GetString("db")
	database, err := openDatabase(path)
	if err != nil {
		return nil, nil, err
	}
	return db.NewStore(database, logger.ComponentLogger("db.store")), func() { database.Close() }, nil
}

func runDbImport(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	w := cmd.OutOrStdout()
	for _, path := range args {
		doc, err := parseFile(cmd, path)
		if err != nil {
			return err
		}
		if err := store.SaveDocument(cmd.Context(), doc); err != nil {
			return errors.Wrapf(err, "failed to store %s", path)
		}
		fmt.Fprintf(w, "%s %s: %d entities (%d skipped) as %s\n",
			pterm.Green("✓"), path, len(doc.Entities), len(doc.Skipped), doc.ID)
	}
	return nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "failed to read statistics")
	}
	files, err := store.Files(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "failed to list files")
	}

	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, struct {
			*db.Stats
			FileList []db.FileRecord `json:"file_list"`
		}{stats, files})
	}

	fmt.Fprintf(w, "Files: %d  Entities: %d  References: %d\n\n", stats.Files, stats.Entities, stats.References)

	if len(files) > 0 {
		data := pterm.TableData{{"ID", "Path", "ACIS", "Entities", "Skipped", "Imported"}}
		for _, f := range files {
			data = append(data, []string{
				f.ID.String(), f.Path, f.ACISVersion,
				strconv.Itoa(f.EntityCount), strconv.Itoa(f.SkippedCount),
				f.ImportedAt.Format("2006-01-02 15:04:05"),
			})
		}
		if err := renderTable(w, data); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	types := make([]string, 0, len(stats.EntitiesByType))
	for typ := range stats.EntitiesByType {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool {
		ci, cj := stats.EntitiesByType[types[i]], stats.EntitiesByType[types[j]]
		if ci != cj {
			return ci > cj
		}
		return types[i] < types[j]
	})
	data := pterm.TableData{{"Entity type", "Count"}}
	for _, typ := range types {
		data = append(data, []string{typ, strconv.Itoa(stats.EntitiesByType[typ])})
	}
	return renderTable(w, data)
}

func runDbEntity(cmd *cobra.Command, args []string) error {
	fileID, err := uuid.Parse(args[0])
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRequest, "file id %q", args[0]),
			"file ids are listed by `satgraph db stats`")
	}
	idx, err := parseIndex(args[1])
	if err != nil {
		return err
	}

	store, closeDB, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	payload, err := store.EntityPayload(cmd.Context(), fileID, idx)
	if err != nil {
		return err
	}
	links, err := store.ReferencesTo(cmd.Context(), fileID, idx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, struct {
			Entity     interface{} `json:"entity"`
			ReferredBy []db.Link   `json:"referred_by"`
		}{payload, links})
	}

	if err := display.OutputJSON(w, payload); err != nil {
		return err
	}
	if len(links) > 0 {
		fmt.Fprintln(w, "\nReferred to by:")
		for _, l := range links {
			fmt.Fprintf(w, "  -%d %s\n", l.From, l.Name)
		}
	}
	return nil
}
