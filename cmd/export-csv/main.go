package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"menuhub/internal/artifact"
	"menuhub/internal/menucsv"
	"menuhub/pkg/logger"
	"menuhub/pkg/models"
	"menuhub/pkg/utils"
)

func main() {
	var (
		menuIn = flag.String("menu", "data/menu.json", "app menu JSON")
		out    = flag.String("out", "data/menu.csv", "output CSV path")
	)
	flag.Parse()

	lg := logger.NewZapLogger(utils.LoadEnv().ZapConfig())
	defer lg.Sync()

	var menu models.AppMenu
	if err := artifact.ReadJSON(*menuIn, &menu); err != nil {
		lg.Fatal("read menu failed", zap.Error(err))
	}

	n, err := exportMenu(*out, menu)
	if err != nil {
		lg.Fatal("export menu failed", zap.String("out", *out), zap.Error(err))
	}
	fmt.Printf("✅ exported %d rows for %d items to %s\n", n, len(menu.Items), *out)
}

func exportMenu(outPath string, menu models.AppMenu) (int, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := menucsv.Write(f, menu)
	if err != nil {
		return n, err
	}
	return n, f.Close()
}
