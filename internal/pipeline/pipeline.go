package pipeline

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"menuhub/internal/appformat"
	"menuhub/internal/artifact"
	"menuhub/internal/consolidate"
	"menuhub/internal/parser"
	"menuhub/internal/photo"
	"menuhub/pkg/models"
)

// Artifact describes one written stage output. CompressErr is reported on
// its own and never fails the stage.
type Artifact struct {
	Path        string
	GzipPath    string
	CompressErr error
}

type Pipeline struct {
	log       *zap.Logger
	Converter *appformat.Converter
}

func New(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log, Converter: appformat.NewConverter()}
}

func (p *Pipeline) Parse(in, out string) (parser.Report, Artifact, error) {
	f, err := os.Open(in)
	if err != nil {
		return parser.Report{}, Artifact{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	rows, rep, err := parser.New(p.log).Parse(f)
	if err != nil {
		return rep, Artifact{}, err
	}
	if rows == nil {
		rows = []models.RawRow{}
	}
	a, err := p.write(out, rows)
	return rep, a, err
}

func (p *Pipeline) Consolidate(in, out string) (consolidate.Stats, Artifact, error) {
	rows, err := artifact.ReadRecords[models.RawRow](in)
	if err != nil {
		return consolidate.Stats{}, Artifact{}, err
	}
	items, st, err := consolidate.Consolidate(rows)
	if err != nil {
		return st, Artifact{}, fmt.Errorf("consolidate %s: %w", in, err)
	}
	a, err := p.write(out, items)
	return st, a, err
}

type PhotoOptions struct {
	Dir       string
	Prefix    string
	Overrides string // optional JSON file
}

func (p *Pipeline) MatchPhotos(in, out string, opts PhotoOptions) (photo.Report, Artifact, error) {
	items, err := artifact.ReadRecords[models.ConsolidatedItem](in)
	if err != nil {
		return photo.Report{}, Artifact{}, err
	}
	candidates, err := photo.ListCandidates(opts.Dir)
	if err != nil {
		return photo.Report{}, Artifact{}, err
	}
	var overrides photo.Overrides
	if opts.Overrides != "" {
		if overrides, err = photo.LoadOverrides(opts.Overrides); err != nil {
			return photo.Report{}, Artifact{}, err
		}
	}

	matched, rep := photo.NewMatcher(candidates, opts.Prefix, overrides, p.log).MatchAll(items)
	a, err := p.write(out, matched)
	return rep, a, err
}

func (p *Pipeline) UploadPhotos(ctx context.Context, in, out string, up *photo.Uploader) (photo.UploadReport, Artifact, error) {
	items, err := artifact.ReadRecords[models.ConsolidatedItem](in)
	if err != nil {
		return photo.UploadReport{}, Artifact{}, err
	}
	uploaded, rep := up.UploadAll(ctx, items)
	a, err := p.write(out, uploaded)
	return rep, a, err
}

func (p *Pipeline) Optimize(in, out string) (appformat.OptimizeStats, Artifact, error) {
	items, err := artifact.ReadRecords[models.ConsolidatedItem](in)
	if err != nil {
		return appformat.OptimizeStats{}, Artifact{}, err
	}
	cats, st, err := appformat.Optimize(items)
	if err != nil {
		return st, Artifact{}, fmt.Errorf("optimize %s: %w", in, err)
	}
	if cats == nil {
		cats = []models.OptimizedCategory{}
	}
	a, err := p.write(out, cats)
	return st, a, err
}

func (p *Pipeline) Convert(in, out string) (appformat.ConvertReport, Artifact, error) {
	cats, err := artifact.ReadRecords[models.OptimizedCategory](in)
	if err != nil {
		return appformat.ConvertReport{}, Artifact{}, err
	}
	menu, rep, err := p.Converter.Convert(cats)
	if err != nil {
		return rep, Artifact{}, fmt.Errorf("convert %s: %w", in, err)
	}
	a, err := p.write(out, menu)
	return rep, a, err
}

// CheckSizes reads the consolidated items and the converted menu and
// verifies that every size price survived conversion. Nothing is written.
func (p *Pipeline) CheckSizes(consolidated, menuPath string) (appformat.SizeCheck, error) {
	items, err := artifact.ReadRecords[models.ConsolidatedItem](consolidated)
	if err != nil {
		return appformat.SizeCheck{}, err
	}
	var menu models.AppMenu
	if err := artifact.ReadJSON(menuPath, &menu); err != nil {
		return appformat.SizeCheck{}, err
	}
	if err := menu.Validate(); err != nil {
		return appformat.SizeCheck{}, fmt.Errorf("%s: %w", menuPath, err)
	}

	sc := appformat.CheckSizes(items, menu)
	if len(sc.Mismatched) > 0 {
		p.log.Warn("size prices changed by conversion", zap.Strings("items", sc.Mismatched))
	}
	return sc, nil
}

// write stores v as indented JSON and then attempts the gzip sibling.
func (p *Pipeline) write(path string, v any) (Artifact, error) {
	if err := artifact.WriteJSON(path, v); err != nil {
		return Artifact{}, err
	}
	a := Artifact{Path: path}
	a.GzipPath, a.CompressErr = artifact.Compress(path)
	if a.CompressErr != nil {
		p.log.Warn("compress artifact failed", zap.String("path", path), zap.Error(a.CompressErr))
	}
	return a, nil
}
