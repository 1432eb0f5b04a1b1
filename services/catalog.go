package services

import (
	"context"
	"strings"
	"time"

	"newbuild-aggregator/config"
	"newbuild-aggregator/feeds"
	"newbuild-aggregator/models"
	"newbuild-aggregator/normalize"
	"newbuild-aggregator/registry"
	"newbuild-aggregator/store"
	"newbuild-aggregator/utils"
)

// Catalog is the read-only consumer surface over the aggregated dataset.
// Accessors never fail for "no data found": they return empty collections
// or nil. Internally they may trigger a cache refresh.
type Catalog struct {
	cfg        *config.Config
	logger     *utils.Logger
	client     *feeds.Client
	registry   *registry.Registry
	aggregator *Aggregator
	cache      *store.Cache
}

// NewCatalog wires the full pipeline behind a snapshot cache.
func NewCatalog(cfg *config.Config, logger *utils.Logger, client *feeds.Client, reg *registry.Registry) *Catalog {
	return &Catalog{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		registry:   reg,
		aggregator: NewAggregator(cfg, logger),
		cache:      store.NewCache(cfg.CacheTTL()),
	}
}

// rebuild runs the whole pipeline: fetch → resolve → aggregate. It never
// fails: empty feeds or an empty registry yield an empty snapshot.
func (c *Catalog) rebuild(ctx context.Context) (*store.Snapshot, error) {
	units := c.client.FetchAll(ctx)
	resolved := c.registry.Resolve(units)
	devs := c.aggregator.Build(resolved)
	builders := c.aggregator.Builders(devs)

	c.logger.Info("[catalog] snapshot rebuilt: %d units, %d developments, %d builders",
		len(units), len(devs), len(builders))

	return &store.Snapshot{
		Units:        units,
		Developments: devs,
		Builders:     builders,
		ComputedAt:   time.Now(),
	}, nil
}

func (c *Catalog) snapshot(ctx context.Context) *store.Snapshot {
	snap, err := c.cache.GetOrRefresh(ctx, time.Now(), c.rebuild)
	if err != nil {
		c.logger.Error("[catalog] snapshot refresh failed: %v", err)
		return &store.Snapshot{}
	}
	return snap
}

// GetAllDevelopments returns every development, most units first.
func (c *Catalog) GetAllDevelopments(ctx context.Context) []*models.Development {
	return c.snapshot(ctx).Developments
}

// GetDevelopmentBySlug returns the development with the given slug, or nil.
func (c *Catalog) GetDevelopmentBySlug(ctx context.Context, slug string) *models.Development {
	for _, dev := range c.snapshot(ctx).Developments {
		if dev.Slug == slug {
			return dev
		}
	}
	return nil
}

// GetDevelopmentUnits returns the feed units matched to a development, in
// feed order. Unmatched registry references simply have no unit here.
func (c *Catalog) GetDevelopmentUnits(ctx context.Context, slug string) []*models.Unit {
	snap := c.snapshot(ctx)

	var dev *models.Development
	for _, d := range snap.Developments {
		if d.Slug == slug {
			dev = d
			break
		}
	}
	if dev == nil {
		return nil
	}

	refs := make(map[string]struct{}, len(dev.UnitReferences))
	for _, ref := range dev.UnitReferences {
		refs[ref] = struct{}{}
	}

	var units []*models.Unit
	for _, u := range snap.Units {
		if _, ok := refs[u.Reference]; ok {
			units = append(units, u)
			continue
		}
		if _, ok := refs[u.ID]; ok {
			units = append(units, u)
		}
	}
	return units
}

// GetAllBuilders returns every builder, most developments first.
func (c *Catalog) GetAllBuilders(ctx context.Context) []*models.Builder {
	return c.snapshot(ctx).Builders
}

// GetBuilderBySlug returns the builder with the given slug, or nil.
func (c *Catalog) GetBuilderBySlug(ctx context.Context, slug string) *models.Builder {
	for _, b := range c.snapshot(ctx).Builders {
		if b.Slug == slug {
			return b
		}
	}
	return nil
}

// GetDevelopmentsByBuilder returns the developments of one developer.
func (c *Catalog) GetDevelopmentsByBuilder(ctx context.Context, builderSlug string) []*models.Development {
	var out []*models.Development
	for _, dev := range c.snapshot(ctx).Developments {
		if dev.DeveloperSlug == builderSlug {
			out = append(out, dev)
		}
	}
	return out
}

// GetDevelopmentsByTown returns developments whose town or zone matches the
// given town, substring in either direction.
func (c *Catalog) GetDevelopmentsByTown(ctx context.Context, town string) []*models.Development {
	needle := strings.ToLower(strings.TrimSpace(town))
	if needle == "" {
		return nil
	}

	var out []*models.Development
	for _, dev := range c.snapshot(ctx).Developments {
		devTown := strings.ToLower(dev.Town)
		devZone := strings.ToLower(dev.Zone)
		if strings.Contains(devTown, needle) || strings.Contains(needle, devTown) ||
			(devZone != "" && (strings.Contains(devZone, needle) || strings.Contains(needle, devZone))) {
			out = append(out, dev)
		}
	}
	return out
}

// GetDevelopmentsByArea returns developments whose region, town or zone
// contains the given area name.
func (c *Catalog) GetDevelopmentsByArea(ctx context.Context, area string) []*models.Development {
	needle := strings.ToLower(strings.TrimSpace(area))
	if needle == "" {
		return nil
	}

	var out []*models.Development
	for _, dev := range c.snapshot(ctx).Developments {
		if strings.Contains(strings.ToLower(dev.Region), needle) ||
			strings.Contains(strings.ToLower(dev.Town), needle) ||
			strings.Contains(strings.ToLower(dev.Zone), needle) {
			out = append(out, dev)
		}
	}
	return out
}

// GetDevelopmentStats computes dataset-wide figures.
func (c *Catalog) GetDevelopmentStats(ctx context.Context) *models.Stats {
	snap := c.snapshot(ctx)
	stats := &models.Stats{
		TotalDevelopments: len(snap.Developments),
		TotalBuilders:     len(snap.Builders),
	}

	var prices []float64
	for _, dev := range snap.Developments {
		stats.TotalUnits += dev.TotalUnits

		switch dev.Status {
		case models.StatusKeyReady:
			stats.KeyReadyCount++
		case models.StatusOffPlan:
			stats.OffPlanCount++
		default:
			stats.UnderConstructionCount++
		}

		if dev.PriceFrom > 0 {
			prices = append(prices, dev.PriceFrom)
		}
		if dev.PriceTo > 0 {
			prices = append(prices, dev.PriceTo)
		}
	}

	if len(prices) > 0 {
		var total float64
		lo, hi := prices[0], prices[0]
		for _, p := range prices {
			total += p
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		stats.AveragePrice = total / float64(len(prices))
		stats.LowestPrice = lo
		stats.PriceRange = normalize.FormatPrice(lo) + " - " + normalize.FormatPrice(hi)
	} else {
		stats.PriceRange = "Contact for pricing"
	}
	return stats
}
