package main

import (
	"context"
	"fmt"
	"os"

	"newbuild-aggregator/config"
	"newbuild-aggregator/feeds"
	"newbuild-aggregator/registry"
	"newbuild-aggregator/services"
	"newbuild-aggregator/utils"
)

func main() {
	logger := utils.NewLogger()
	defer logger.Sync()

	cfg := config.Load()

	logger.Info("=== New Build Aggregator starting ===")
	logger.Info("Config — concurrency: %d | rate: %dms | retries: %d | cache TTL: %dm",
		cfg.MaxConcurrency, cfg.RateLimitMs, cfg.MaxRetries, cfg.CacheTTLMinutes)

	feedList, err := config.LoadFeeds(cfg.FeedsPath)
	if err != nil {
		logger.Error("Failed to load feed config: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d feed(s) from %s", len(feedList), cfg.FeedsPath)

	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		logger.Error("Failed to load development registry: %v", err)
		os.Exit(1)
	}
	logger.Info("Registry holds %d unit reference(s)", len(reg.Units))

	client := feeds.NewClient(cfg, feedList, logger)
	catalog := services.NewCatalog(cfg, logger, client, reg)

	ctx := context.Background()
	devs := catalog.GetAllDevelopments(ctx)
	if len(devs) == 0 {
		logger.Error("No developments were built. Exiting.")
		os.Exit(1)
	}

	builders := catalog.GetAllBuilders(ctx)
	stats := catalog.GetDevelopmentStats(ctx)

	reportSvc := services.NewReportService(logger)
	report := reportSvc.Generate(stats, devs, builders)
	reportSvc.Print(report)

	fmt.Printf("  Done. %d developments from %d builders across the catalog.\n\n",
		stats.TotalDevelopments, stats.TotalBuilders)
}
