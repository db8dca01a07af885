package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"menuhub/internal/artifact"
	"menuhub/internal/store"
	"menuhub/pkg/logger"
	"menuhub/pkg/models"
	"menuhub/pkg/utils"
)

func main() {
	cfg := utils.LoadEnv()
	var (
		menuIn = flag.String("menu", "data/menu.json", "app menu JSON to import")
		driver = flag.String("driver", cfg.Database.Driver, "store driver: sqlite or postgres")
	)
	flag.Parse()
	cfg.Database.Driver = *driver

	lg := logger.NewZapLogger(cfg.ZapConfig())
	defer lg.Sync()

	var menu models.AppMenu
	if err := artifact.ReadJSON(*menuIn, &menu); err != nil {
		lg.Fatal("read menu failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	defer cancel()

	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("open store failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer s.Close()

	rep, err := store.NewImporter(s, lg).Import(ctx, menu)
	if err != nil {
		lg.Fatal("import failed", zap.Error(err))
	}

	fmt.Printf("✅ imported %s into %s store\n", *menuIn, cfg.Database.Driver)
	fmt.Printf("   categories: %d  items: %d  failed: %d\n", rep.CategoriesUpserted, rep.ItemsUpserted, rep.Failed)
	for _, f := range rep.Failures {
		fmt.Printf("   ❌ %s %s: %s\n", f.Kind, f.ID, f.Error)
	}
	if rep.Failed > 0 {
		s.Close()
		_ = lg.Sync()
		os.Exit(1)
	}
}
