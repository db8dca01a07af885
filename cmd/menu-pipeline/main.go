package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"menuhub/internal/pipeline"
	"menuhub/internal/photo"
	"menuhub/internal/storage"
	"menuhub/pkg/logger"
	"menuhub/pkg/utils"
)

const (
	rowsFile         = "rows.json"
	consolidatedFile = "consolidated.json"
	photosFile       = "menu_with_photos.json"
	optimizedFile    = "optimized_menu.json"
	menuFile         = "menu.json"
)

type app struct {
	cfg *utils.Config
	log *zap.Logger
	p   *pipeline.Pipeline
}

func main() {
	cfg := utils.LoadEnv()
	lg := logger.NewZapLogger(cfg.ZapConfig())
	defer lg.Sync()

	global := flag.NewFlagSet("menu-pipeline", flag.ExitOnError)
	dataDir := global.String("data", "data", "directory for stage artifacts")
	if err := global.Parse(os.Args[1:]); err != nil {
		fail(lg, "parse flags", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	a := &app{cfg: cfg, log: lg, p: pipeline.New(lg)}
	in := func(name string) string { return filepath.Join(*dataDir, name) }

	switch args[0] {
	case "parse":
		fs := flag.NewFlagSet("parse", flag.ExitOnError)
		src := fs.String("in", "menu.csv", "menu CSV export")
		out := fs.String("out", in(rowsFile), "output JSON")
		_ = fs.Parse(args[1:])
		a.parse(*src, *out)
	case "consolidate":
		fs := flag.NewFlagSet("consolidate", flag.ExitOnError)
		src := fs.String("in", in(rowsFile), "parsed rows JSON")
		out := fs.String("out", in(consolidatedFile), "output JSON")
		_ = fs.Parse(args[1:])
		a.consolidate(*src, *out)
	case "match-photos":
		fs := flag.NewFlagSet("match-photos", flag.ExitOnError)
		src := fs.String("in", in(consolidatedFile), "consolidated items JSON")
		out := fs.String("out", in(photosFile), "output JSON")
		opts := photoFlags(fs)
		_ = fs.Parse(args[1:])
		a.matchPhotos(*src, *out, *opts)
	case "upload-photos":
		fs := flag.NewFlagSet("upload-photos", flag.ExitOnError)
		src := fs.String("in", in(photosFile), "matched items JSON")
		out := fs.String("out", in(photosFile), "output JSON")
		dir := fs.String("photos", "photos", "local photo directory")
		_ = fs.Parse(args[1:])
		a.uploadPhotos(*src, *out, *dir)
	case "optimize":
		fs := flag.NewFlagSet("optimize", flag.ExitOnError)
		src := fs.String("in", in(photosFile), "matched items JSON")
		out := fs.String("out", in(optimizedFile), "output JSON")
		_ = fs.Parse(args[1:])
		a.optimize(*src, *out)
	case "convert":
		fs := flag.NewFlagSet("convert", flag.ExitOnError)
		src := fs.String("in", in(optimizedFile), "optimized menu JSON")
		out := fs.String("out", in(menuFile), "output JSON")
		_ = fs.Parse(args[1:])
		a.convert(*src, *out)
	case "check-sizes":
		fs := flag.NewFlagSet("check-sizes", flag.ExitOnError)
		items := fs.String("items", in(consolidatedFile), "consolidated items JSON")
		menu := fs.String("menu", in(menuFile), "converted app menu JSON")
		_ = fs.Parse(args[1:])
		a.checkSizes(*items, *menu)
	case "run":
		fs := flag.NewFlagSet("run", flag.ExitOnError)
		src := fs.String("in", "menu.csv", "menu CSV export")
		out := fs.String("out", in(menuFile), "final app menu JSON")
		opts := photoFlags(fs)
		upload := fs.Bool("upload", false, "upload matched photos to object storage")
		_ = fs.Parse(args[1:])

		a.parse(*src, in(rowsFile))
		a.consolidate(in(rowsFile), in(consolidatedFile))
		a.matchPhotos(in(consolidatedFile), in(photosFile), *opts)
		if *upload {
			a.uploadPhotos(in(photosFile), in(photosFile), opts.Dir)
		}
		a.optimize(in(photosFile), in(optimizedFile))
		a.convert(in(optimizedFile), *out)
		a.checkSizes(in(consolidatedFile), *out)
	default:
		printUsage()
		os.Exit(1)
	}
}

func photoFlags(fs *flag.FlagSet) *pipeline.PhotoOptions {
	opts := &pipeline.PhotoOptions{}
	fs.StringVar(&opts.Dir, "photos", "photos", "local photo directory")
	fs.StringVar(&opts.Prefix, "prefix", "/images", "image path prefix written into items")
	fs.StringVar(&opts.Overrides, "overrides", "", "optional JSON of item name -> photo filenames")
	return opts
}

func (a *app) parse(in, out string) {
	rep, art, err := a.p.Parse(in, out)
	if err != nil {
		fail(a.log, "parse", err)
	}
	fmt.Printf("✅ parsed %s -> %s\n", in, out)
	fmt.Printf("   records: %d  valid: %d  skipped: %d  malformed: %d\n", rep.Total, rep.Valid, rep.Skipped, rep.Malformed)
	fmt.Printf("   zero price: %d  without latin name: %d\n", len(rep.ZeroPrice), len(rep.EmptyName))
	for _, c := range rep.Categories {
		fmt.Printf("   %-24s %d\n", c.Category, c.Count)
	}
	reportArtifact(art)
}

func (a *app) consolidate(in, out string) {
	st, art, err := a.p.Consolidate(in, out)
	if err != nil {
		fail(a.log, "consolidate", err)
	}
	fmt.Printf("✅ consolidated %d rows into %d items -> %s\n", st.RowsIn, st.ItemsOut, out)
	fmt.Printf("   with sizes: %d  with drink types: %d  with preparation types: %d\n",
		st.ItemsWithSizes, st.ItemsWithDrinkTypes, st.ItemsWithPreparationType)
	reportArtifact(art)
}

func (a *app) matchPhotos(in, out string, opts pipeline.PhotoOptions) {
	rep, art, err := a.p.MatchPhotos(in, out, opts)
	if err != nil {
		fail(a.log, "match photos", err)
	}
	fmt.Printf("✅ matched photos for %d/%d items (%s) -> %s\n", rep.ItemsWithPhotos, rep.TotalItems, rep.MatchRate, out)
	if rep.FromOverrides > 0 {
		fmt.Printf("   from overrides: %d\n", rep.FromOverrides)
	}
	printList("items without photo", rep.UnmatchedItems)
	printList("unused photos", rep.UnusedPhotos)
	reportArtifact(art)
}

func (a *app) uploadPhotos(in, out, dir string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := storage.NewS3Client(ctx, a.cfg.Storage)
	if err != nil {
		fail(a.log, "object storage", err)
	}
	up := photo.NewUploader(client, dir, a.cfg.Storage.KeyPrefix, a.log)

	rep, art, err := a.p.UploadPhotos(ctx, in, out, up)
	if err != nil {
		fail(a.log, "upload photos", err)
	}
	fmt.Printf("✅ uploaded %d/%d photos, %d items now point at object storage -> %s\n", rep.Uploaded, rep.Photos, rep.Items, out)
	printList("failed uploads", rep.FailedFor)
	reportArtifact(art)
}

func (a *app) optimize(in, out string) {
	st, art, err := a.p.Optimize(in, out)
	if err != nil {
		fail(a.log, "optimize", err)
	}
	fmt.Printf("✅ optimized %d items in %d categories -> %s\n", st.Items, st.Categories, out)
	fmt.Printf("   with photos: %d  with sizes: %d  with drink types: %d  avg variations: %.2f\n",
		st.ItemsWithPhotos, st.ItemsWithSizes, st.ItemsWithDrinks, st.AverageVariations)
	reportArtifact(art)
}

func (a *app) convert(in, out string) {
	rep, art, err := a.p.Convert(in, out)
	if err != nil {
		fail(a.log, "convert", err)
	}
	fmt.Printf("✅ converted %d categories, %d items (%d drink items, %d with variants) -> %s\n",
		rep.Categories, rep.Items, rep.DrinkItems, rep.ItemsWithVariants, out)
	printList("categories without translation", rep.UntranslatedCategories)
	reportArtifact(art)
}

func (a *app) checkSizes(items, menu string) {
	sc, err := a.p.CheckSizes(items, menu)
	if err != nil {
		fail(a.log, "check sizes", err)
	}
	if len(sc.Mismatched) == 0 {
		fmt.Printf("✅ size prices intact for %d sized items\n", sc.Checked)
		return
	}
	fmt.Printf("⚠️  size prices differ for %d/%d sized items\n", len(sc.Mismatched), sc.Checked)
	printList("changed", sc.Mismatched)
}

func reportArtifact(a pipeline.Artifact) {
	if a.CompressErr != nil {
		fmt.Printf("⚠️  gzip failed for %s: %v\n", a.Path, a.CompressErr)
		return
	}
	fmt.Printf("   gzip: %s\n", a.GzipPath)
}

func printList(title string, xs []string) {
	if len(xs) == 0 {
		return
	}
	fmt.Printf("   %s (%d): %s\n", title, len(xs), strings.Join(xs, ", "))
}

func fail(lg *zap.Logger, stage string, err error) {
	lg.Error(stage+" failed", zap.Error(err))
	_ = lg.Sync()
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", stage, err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`menu-pipeline [-data dir] <command> [flags]

Commands:
  parse          menu CSV -> rows.json
  consolidate    rows.json -> consolidated.json
  match-photos   consolidated.json -> menu_with_photos.json
  upload-photos  push matched photos to object storage and rewrite image URLs
  optimize       menu_with_photos.json -> optimized_menu.json
  convert        optimized_menu.json -> menu.json
  check-sizes    compare size prices of consolidated.json and menu.json
  run            every stage in order`)
}
