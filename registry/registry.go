// Package registry holds the hand-curated unit→development mapping and the
// location tables that are authoritative over feed-supplied data.
package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"newbuild-aggregator/models"
)

// Entry is the curated development info for one unit reference.
type Entry struct {
	Developer    string `yaml:"developer"`
	Development  string `yaml:"development"`
	DeliveryDate string `yaml:"delivery_date"` // DD-MM-YYYY
	Zone         string `yaml:"zone"`
	Status       string `yaml:"status,omitempty"` // rarely set; date-derived otherwise
}

// Registry is the authoritative unit-reference → development mapping,
// loaded once per process.
type Registry struct {
	Units map[string]Entry `yaml:"units"`
}

// Load reads the registry from a YAML file. An empty registry is legal.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}

	var r Registry
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	if r.Units == nil {
		r.Units = make(map[string]Entry)
	}
	return &r, nil
}

// Resolved is one development key with its full expected reference list and
// the feed units verified to belong to it.
type Resolved struct {
	Name  string
	Info  Entry
	Refs  []string
	Units []*models.Unit
}

// Resolve groups registry entries by case-normalized development name and
// attaches the feed units whose reference or id exactly equals a registry
// reference. Matching is never inferred by prefix, fuzzy similarity, or
// development-name text. Developments with zero matched units are still
// produced — unlisted units are the common case, not an error.
func (r *Registry) Resolve(units []*models.Unit) []*Resolved {
	byRef := make(map[string]*models.Unit, len(units)*2)
	for _, u := range units {
		if u.Reference != "" {
			byRef[u.Reference] = u
			byRef[strings.ToUpper(u.Reference)] = u
		}
		if u.ID != "" && u.ID != u.Reference {
			byRef[u.ID] = u
			byRef[strings.ToUpper(u.ID)] = u
		}
	}

	refs := make([]string, 0, len(r.Units))
	for ref := range r.Units {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	groups := make(map[string]*Resolved)
	var order []string

	for _, ref := range refs {
		info := r.Units[ref]
		key := strings.ToUpper(strings.TrimSpace(info.Development))
		if key == "" {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &Resolved{Name: strings.TrimSpace(info.Development), Info: info}
			groups[key] = g
			order = append(order, key)
		}
		g.Refs = append(g.Refs, ref)

		u := byRef[ref]
		if u == nil {
			u = byRef[strings.ToUpper(ref)]
		}
		if u == nil {
			continue
		}
		// exact equality double-check: the lookup map also holds
		// case-normalized keys, but attribution requires the unit's own
		// reference or id to equal the registry reference
		if u.Reference == ref || u.ID == ref {
			g.Units = append(g.Units, u)
		}
	}

	out := make([]*Resolved, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}
