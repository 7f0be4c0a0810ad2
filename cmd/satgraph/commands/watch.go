package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/satgraph/db"
	"github.com/teranos/satgraph/logger"
	"github.com/teranos/satgraph/metrics"
	"github.com/teranos/satgraph/sat"
	"github.com/teranos/satgraph/watch"
)

// WatchCmd re-parses a file every time it changes
var WatchCmd = &cobra.Command{
	Use:   "watch <file.sat>",
	Short: "Re-parse a file whenever it changes",
	Long: `Parse a file, then parse it again after every change until interrupted.
Parser metrics are served for Prometheus when --metrics-addr (or
watch.metrics_addr) is set.

Examples:
  satgraph watch part.sat
  satgraph watch part.sat --metrics-addr :9464 --import`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addWorkersFlag(WatchCmd)
	WatchCmd.Flags().Duration("debounce", 0, "Quiet period before re-parsing (default from watch.debounce_ms)")
	WatchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	WatchCmd.Flags().Bool("import", false, "Store every successful parse in the database")
}

// reparser parses one file and reports the outcome
type reparser struct {
	cmd   *cobra.Command
	store *db.Store
	out   io.Writer
}

func (r *reparser) run(ctx context.Context, path string) error {
	doc, err := parseFile(r.cmd, path, sat.WithObserver(metrics.Observer{}))
	if err != nil {
		fmt.Fprintf(r.out, "%s %s: %v\n", pterm.Red("✗"), path, err)
		return err
	}
	fmt.Fprintf(r.out, "%s %s %s: %d entities, %d skipped\n",
		time.Now().Format("15:04:05"), pterm.Green("✓"), path, len(doc.Entities), len(doc.Skipped))

	if r.store != nil {
		if err := r.store.SaveDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config()
	path := args[0]

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	if f := cmd.Flags().Lookup("debounce"); f.Changed {
		debounce, _ = cmd.Flags().GetDuration("debounce")
	}
	metricsAddr := cfg.Watch.MetricsAddr
	if f := cmd.Flags().Lookup("metrics-addr"); f.Changed {
		metricsAddr, _ = cmd.Flags().GetString("metrics-addr")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &reparser{cmd: cmd, out: cmd.OutOrStdout()}
	if doImport, _ := cmd.Flags().GetBool("import"); doImport {
		database, err := openDatabase("")
		if err != nil {
			return err
		}
		defer database.Close()
		r.store = db.NewStore(database, logger.ComponentLogger("db.store"))
	}

	// A broken first parse is reported but does not stop watching
	_ = r.run(ctx, path)

	fw, err := watch.NewFileWatcher(path, debounce, logger.ComponentLogger("watch"))
	if err != nil {
		return err
	}
	fw.OnChange(func(changed string) error {
		return r.run(ctx, changed)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fw.Run(gctx) })
	if metricsAddr != "" {
		g.Go(func() error { return metrics.Serve(gctx, metricsAddr, logger.ComponentLogger("metrics")) })
	}

	logger.Logger.Infow("Watching for changes",
		logger.FieldFile, fw.Path(),
		"debounce", debounce.String(),
		"metrics_addr", metricsAddr)
	return g.Wait()
}
