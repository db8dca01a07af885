// Package photo assigns photo files to consolidated menu items by scored
// text similarity and uploads the chosen photos to object storage.
package photo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"menuhub/pkg/models"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// ListCandidates returns the image filenames directly inside dir, sorted by name.
func ListCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read photo dir: %w", err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Overrides pins items to photos by name. Keys are item names in any
// language; values are filenames tried in order.
type Overrides map[string][]string

func LoadOverrides(path string) (Overrides, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	var raw Overrides
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode overrides %s: %w", path, err)
	}
	out := make(Overrides, len(raw))
	for k, v := range raw {
		out[NormalizeText(k)] = v
	}
	return out, nil
}

type Matcher struct {
	candidates []string
	normalized []string
	available  map[string]bool
	prefix     string
	overrides  Overrides
	log        *zap.Logger
}

// NewMatcher scores against candidates in the given order. prefix is joined
// with the chosen filename to form the item's image path. Override keys must
// already be normalized, as LoadOverrides does.
func NewMatcher(candidates []string, prefix string, overrides Overrides, log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Matcher{
		candidates: candidates,
		normalized: make([]string, len(candidates)),
		available:  make(map[string]bool, len(candidates)),
		prefix:     prefix,
		overrides:  overrides,
		log:        log,
	}
	for i, c := range candidates {
		m.normalized[i] = normalizeFilename(c)
		m.available[c] = true
	}
	return m
}

// Best returns the highest scoring candidate. Ties keep the earlier
// candidate; a best score of zero is no match.
func (m *Matcher) Best(item models.ConsolidatedItem) (string, int, bool) {
	s := newSubject(item)
	best, bestScore := -1, 0
	for i, photo := range m.normalized {
		if sc := s.score(photo); sc > bestScore {
			best, bestScore = i, sc
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return m.candidates[best], bestScore, true
}

func (m *Matcher) override(item models.ConsolidatedItem) (string, bool) {
	for _, name := range []string{item.NameAR, item.NameEN, item.NameTR} {
		files, ok := m.overrides[NormalizeText(name)]
		if !ok {
			continue
		}
		for _, f := range files {
			if m.available[f] {
				return f, true
			}
		}
	}
	return "", false
}

// ImagePath joins the configured prefix and filename.
func (m *Matcher) ImagePath(filename string) string {
	if m.prefix == "" {
		return filename
	}
	return strings.TrimSuffix(m.prefix, "/") + "/" + filename
}

type Report struct {
	TotalItems      int      `json:"total_items"`
	ItemsWithPhotos int      `json:"items_with_photos"`
	ItemsWithout    int      `json:"items_without_photos"`
	MatchRate       string   `json:"match_rate"`
	FromOverrides   int      `json:"from_overrides"`
	UnmatchedItems  []string `json:"unmatched_items"`
	UnusedPhotos    []string `json:"unused_photos"`
}

// MatchAll returns a copy of items with image and image_filename assigned.
// Items without a match get null for both.
func (m *Matcher) MatchAll(items []models.ConsolidatedItem) ([]models.ConsolidatedItem, Report) {
	out := make([]models.ConsolidatedItem, len(items))
	rep := Report{TotalItems: len(items)}
	used := make(map[string]bool)

	for i, it := range items {
		it.Image, it.ImageFilename = nil, nil

		file, ok := m.override(it)
		if ok {
			rep.FromOverrides++
		} else {
			var score int
			file, score, ok = m.Best(it)
			if ok {
				m.log.Debug("photo matched", zap.String("item", it.Names().Primary()), zap.String("photo", file), zap.Int("score", score))
			}
		}

		if ok {
			p := m.ImagePath(file)
			f := file
			it.Image, it.ImageFilename = &p, &f
			used[file] = true
			rep.ItemsWithPhotos++
		} else {
			rep.ItemsWithout++
			rep.UnmatchedItems = append(rep.UnmatchedItems, fmt.Sprintf("%s (%s)", it.Names().Primary(), it.Category))
		}
		out[i] = it
	}

	for _, c := range m.candidates {
		if !used[c] {
			rep.UnusedPhotos = append(rep.UnusedPhotos, c)
		}
	}
	rep.MatchRate = matchRate(rep.ItemsWithPhotos, rep.TotalItems)

	m.log.Info("photo matching done",
		zap.Int("items", rep.TotalItems),
		zap.Int("matched", rep.ItemsWithPhotos),
		zap.Int("unused_photos", len(rep.UnusedPhotos)),
	)
	return out, rep
}

func matchRate(matched, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(matched)*100/float64(total))))
}
