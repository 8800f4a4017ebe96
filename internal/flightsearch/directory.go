// Package flightsearch builds prefilled messaging links for the quick flight search.
package flightsearch

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed airports.toml
var defaultAirports []byte

// Airport is one selectable entry of the directory.
type Airport struct {
	Code    string `toml:"code" json:"code"`
	City    string `toml:"city" json:"city"`
	Name    string `toml:"name" json:"name"`
	Country string `toml:"country" json:"country"`
}

// Directory is the pre-loaded airport list, keyed by code.
type Directory struct {
	airports []Airport
	byCode   map[string]Airport
}

type directoryFile struct {
	Airports []Airport `toml:"airport"`
}

// LoadDirectory reads airports from a TOML file, or the built-in list when path is empty.
func LoadDirectory(path string) (*Directory, error) {
	if path == "" {
		return ParseDirectory(defaultAirports)
	}
	var f directoryFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode airports file: %w", err)
	}
	return newDirectory(f.Airports)
}

// ParseDirectory reads airports from TOML data.
func ParseDirectory(data []byte) (*Directory, error) {
	var f directoryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode airports: %w", err)
	}
	return newDirectory(f.Airports)
}

func newDirectory(airports []Airport) (*Directory, error) {
	d := &Directory{byCode: make(map[string]Airport, len(airports))}
	for _, a := range airports {
		a.Code = normalizeCode(a.Code)
		if a.Code == "" {
			return nil, fmt.Errorf("airport %q has no code", a.Name)
		}
		if _, dup := d.byCode[a.Code]; dup {
			return nil, fmt.Errorf("duplicate airport code %q", a.Code)
		}
		d.byCode[a.Code] = a
		d.airports = append(d.airports, a)
	}
	return d, nil
}

// Lookup resolves an airport by code, ignoring case and surrounding space.
func (d *Directory) Lookup(code string) (Airport, bool) {
	a, ok := d.byCode[normalizeCode(code)]
	return a, ok
}

// All returns the airports in file order.
func (d *Directory) All() []Airport {
	return append([]Airport(nil), d.airports...)
}

// Search returns up to limit airports whose code, city, name or country
// matches query. Exact code matches come first, then prefix matches.
func (d *Directory) Search(query string, limit int) []Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return limitTo(d.All(), limit)
	}

	type scored struct {
		a     Airport
		rank  int
		index int
	}
	var hits []scored
	for i, a := range d.airports {
		rank := matchRank(a, q)
		if rank < 0 {
			continue
		}
		hits = append(hits, scored{a: a, rank: rank, index: i})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].index < hits[j].index
	})

	out := make([]Airport, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.a)
	}
	return limitTo(out, limit)
}

func matchRank(a Airport, q string) int {
	code := strings.ToLower(a.Code)
	city := strings.ToLower(a.City)
	switch {
	case code == q:
		return 0
	case strings.HasPrefix(city, q):
		return 1
	case strings.Contains(city, q),
		strings.Contains(strings.ToLower(a.Name), q),
		strings.Contains(strings.ToLower(a.Country), q):
		return 2
	}
	return -1
}

func limitTo(a []Airport, limit int) []Airport {
	if limit > 0 && len(a) > limit {
		return a[:limit]
	}
	return a
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
