package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/quarrydata/quarry/internal/cache"
	"github.com/quarrydata/quarry/internal/config"
	"github.com/quarrydata/quarry/internal/printer"
	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/imageclass"
)

var (
	summaryKind  string
	summaryQuick bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary [name]",
	Short: "Summarize registered datasets",
	Long: `Summarize one dataset, or every dataset registered under a kind.

Without --quick, each dataset is materialized (downloading it if
needed), summarized, and the result cached. With --quick, nothing is
materialized: summaries come from the cache, and datasets without a
cached summary are reported instead of computed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryKind, "kind", imageclass.Kind, "Dataset kind to summarize")
	summaryCmd.Flags().BoolVar(&summaryQuick, "quick", false, "Use cached summaries only; report misses instead of computing")
	rootCmd.AddCommand(summaryCmd)
}

// newStore builds the configured summary store. The returned closer is
// a no-op for the disk backend.
func newStore(cfg *config.Config) (dataset.SummaryStore, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		store := cache.NewRedis(&redis.Options{Addr: cfg.Cache.RedisAddr})
		return store, func() { store.Close() }, nil
	case config.BackendDisk:
		return cache.NewDisk(cfg.DataRoot), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return summarizeOne(ctx, cfg, args[0])
	}

	store, closeStore, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	summary, failed, err := dataset.Default.SummaryAll(ctx, store, summaryKind, summaryQuick)
	if err != nil {
		return err
	}
	if summary.Len() == 0 && len(failed) > 0 {
		return printer.Error(
			fmt.Sprintf("no cached summaries for kind %q", summaryKind),
			"Run 'quarry summary' without --quick to compute and cache them.",
		)
	}
	return writeTable(os.Stdout, summary)
}

func summarizeOne(ctx context.Context, cfg *config.Config, name string) error {
	ds, err := dataset.Get(summaryKind, name)
	if err != nil {
		return err
	}
	summary, err := dataset.Default.Summarize(ds)
	if err != nil {
		return err
	}

	store, closeStore, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := store.Save(ctx, name, summaryKind, summary); err != nil {
		return err
	}

	fmt.Printf("Summary for %q:\n\n", name)
	return writeTable(os.Stdout, summary)
}
