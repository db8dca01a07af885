package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"menuhub/internal/pricing"
	"menuhub/internal/store"
	"menuhub/pkg/logger"
	"menuhub/pkg/utils"
)

func main() {
	cfg := utils.LoadEnv()
	var (
		refIn  = flag.String("prices", "data/reference_prices.csv", "reference price CSV")
		driver = flag.String("driver", cfg.Database.Driver, "store driver: sqlite or postgres")
	)
	flag.Parse()
	cfg.Database.Driver = *driver

	lg := logger.NewZapLogger(cfg.ZapConfig())
	defer lg.Sync()

	f, err := os.Open(*refIn)
	if err != nil {
		lg.Fatal("open reference prices failed", zap.Error(err))
	}
	table, err := pricing.LoadReference(f)
	f.Close()
	if err != nil {
		lg.Fatal("load reference prices failed", zap.String("path", *refIn), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	defer cancel()

	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("open store failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer s.Close()

	rep, err := pricing.NewReconciler(s, table, lg).Reconcile(ctx)
	if err != nil {
		lg.Fatal("reconcile failed", zap.Error(err))
	}

	fmt.Printf("✅ checked %d items against %d reference prices\n", rep.Items, table.Len())
	fmt.Printf("   updated: %d  unchanged: %d  not found: %d  failed: %d  partial matches: %d\n",
		rep.Updated, rep.Unchanged, rep.NotFound, rep.Failed, rep.Partial)
	for _, name := range rep.Missing {
		fmt.Printf("   ⚠️  no reference price: %s\n", name)
	}
}
