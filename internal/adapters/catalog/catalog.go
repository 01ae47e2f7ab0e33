// Package catalog loads the static move catalog from a JSON data bundle
// and serves the items eligible for comparison within each category.
//
// The bundle is the scraped frame-data set, keyed by character:
//
//	{"metadata": {...}, "characters": {"mario": [ {move}, ... ], ...}}
//
// The provider is immutable after Load; reads need no locking.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/moveboard/moveboard/internal/domain/ranking"
)

// Move is one comparable unit: a single attack or action of a character.
// The frame-data payload is opaque to the ranking engine; only ID and
// Type (the category) matter for comparisons.
type Move struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Character     string  `json:"character"`
	Type          string  `json:"type"`
	StartupFrames int     `json:"startupFrames"`
	EndLag        int     `json:"endLag"`
	TotalFrames   int     `json:"totalFrames"`
	Damage        float64 `json:"damage"`
	OnShieldLag   int     `json:"onShieldLag"`
	ShieldStun    int     `json:"shieldStun"`

	// Derived analysis fields, computed at load time.
	SafetyRating    float64 `json:"safety_rating"`
	ComboPotential  float64 `json:"combo_potential"`
	KillPowerIndex  float64 `json:"kill_power_index"`
	FrameEfficiency float64 `json:"frame_efficiency"`
}

// bundle mirrors the on-disk shape of the data bundle.
type bundle struct {
	Metadata   map[string]any    `json:"metadata"`
	Characters map[string][]Move `json:"characters"`
}

// Provider indexes the catalog by category and by move id.
type Provider struct {
	byCategory map[string][]Move
	byID       map[string]Move
	categories []string
}

// Load reads and indexes the bundle at path.
func Load(ctx context.Context, path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", path, err)
	}
	return Parse(data)
}

// Parse indexes a bundle from raw JSON.
func Parse(data []byte) (*Provider, error) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if len(b.Characters) == 0 {
		return nil, fmt.Errorf("%w: bundle has no characters", ErrEmptyBundle)
	}

	p := &Provider{
		byCategory: make(map[string][]Move),
		byID:       make(map[string]Move),
	}
	for character, moves := range b.Characters {
		for _, m := range moves {
			if m.ID == "" {
				continue
			}
			if m.Character == "" {
				m.Character = character
			}
			m.Type = strings.ToLower(strings.TrimSpace(m.Type))
			if m.Type == "" {
				continue
			}
			if _, dup := p.byID[m.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateMove, m.ID)
			}
			derive(&m)
			p.byID[m.ID] = m
			p.byCategory[m.Type] = append(p.byCategory[m.Type], m)
		}
	}

	// Deterministic ordering within a category; map iteration above is not.
	for cat := range p.byCategory {
		sort.Slice(p.byCategory[cat], func(i, j int) bool {
			return p.byCategory[cat][i].ID < p.byCategory[cat][j].ID
		})
		p.categories = append(p.categories, cat)
	}
	sort.Strings(p.categories)
	return p, nil
}

// Items returns the moves of a category, or ErrNoCatalog for a category
// the bundle does not know. Callers must not invoke the ranking engine
// for such a category: an empty item list would silently misreport
// "no data" for moves that do exist elsewhere.
func (p *Provider) Items(category string) ([]Move, error) {
	moves, ok := p.byCategory[strings.ToLower(category)]
	if !ok || len(moves) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoCatalog, category)
	}
	out := make([]Move, len(moves))
	copy(out, moves)
	return out, nil
}

// RankingItems returns the engine's minimal view of a category.
func (p *Provider) RankingItems(category string) ([]ranking.Item, error) {
	moves, err := p.Items(category)
	if err != nil {
		return nil, err
	}
	items := make([]ranking.Item, len(moves))
	for i, m := range moves {
		items[i] = ranking.Item{ID: m.ID, Category: m.Type}
	}
	return items, nil
}

// Lookup resolves a move id.
func (p *Provider) Lookup(id string) (Move, bool) {
	m, ok := p.byID[id]
	return m, ok
}

// Resolve reports whether id names a move of the given category.
func (p *Provider) Resolve(id, category string) bool {
	m, ok := p.byID[id]
	return ok && m.Type == strings.ToLower(category)
}

// Categories lists the known categories in sorted order.
func (p *Provider) Categories() []string {
	out := make([]string, len(p.categories))
	copy(out, p.categories)
	return out
}

// Count returns the total number of moves in the catalog.
func (p *Provider) Count() int {
	return len(p.byID)
}
