package services

import (
	"fmt"
	"sort"
	"strings"

	"newbuild-aggregator/models"
	"newbuild-aggregator/normalize"
	"newbuild-aggregator/utils"
)

type Report struct {
	Stats            *models.Stats
	LargestByUnits   *models.Development
	TopBuilders      []*models.Builder
	DevsByRegion     map[string]int
	UpcomingKeyReady []*models.Development
}

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(stats *models.Stats, devs []*models.Development, builders []*models.Builder) *Report {
	report := &Report{
		Stats:        stats,
		DevsByRegion: make(map[string]int),
	}

	if len(devs) == 0 {
		return report
	}

	for _, d := range devs {
		report.DevsByRegion[d.Region]++
		if report.LargestByUnits == nil || d.TotalUnits > report.LargestByUnits.TotalUnits {
			report.LargestByUnits = d
		}
		if d.Status == models.StatusKeyReady {
			report.UpcomingKeyReady = append(report.UpcomingKeyReady, d)
		}
	}

	sorted := make([]*models.Builder, len(builders))
	copy(sorted, builders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DevelopmentCount > sorted[j].DevelopmentCount
	})
	if len(sorted) > 5 {
		report.TopBuilders = sorted[:5]
	} else {
		report.TopBuilders = sorted
	}

	return report
}

func (s *ReportService) Print(r *Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏗  NEW BUILD CATALOG REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Developments : \033[1m%d\033[0m\n", r.Stats.TotalDevelopments)
	fmt.Printf("  Units        : \033[1m%d\033[0m\n", r.Stats.TotalUnits)
	fmt.Printf("  Builders     : \033[1m%d\033[0m\n", r.Stats.TotalBuilders)
	fmt.Println()

	// Status breakdown
	fmt.Printf("\033[1;33m  Construction Status\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Key ready          : \033[1;32m%d\033[0m\n", r.Stats.KeyReadyCount)
	fmt.Printf("  Under construction : \033[1;33m%d\033[0m\n", r.Stats.UnderConstructionCount)
	fmt.Printf("  Off plan           : \033[1;36m%d\033[0m\n", r.Stats.OffPlanCount)
	fmt.Println()

	// Prices
	fmt.Printf("\033[1;33m  Prices\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.Stats.AveragePrice > 0 {
		fmt.Printf("  Average : \033[1;32m%s\033[0m\n", normalize.FormatPrice(r.Stats.AveragePrice))
		fmt.Printf("  From    : \033[1;32m%s\033[0m\n", normalize.FormatPrice(r.Stats.LowestPrice))
		fmt.Printf("  Range   : %s\n", r.Stats.PriceRange)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Largest development
	if r.LargestByUnits != nil {
		fmt.Printf("\033[1;33m  Largest Development\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.LargestByUnits.Name, 50))
		fmt.Printf("  Developer : %s\n", r.LargestByUnits.Developer)
		fmt.Printf("  Town      : %s\n", r.LargestByUnits.Town)
		fmt.Printf("  Units     : \033[1m%d\033[0m (%d available)\n",
			r.LargestByUnits.TotalUnits, r.LargestByUnits.AvailableUnits)
		fmt.Println()
	}

	// Top builders
	fmt.Printf("\033[1;33m  Top Builders\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopBuilders) == 0 {
		fmt.Printf("  No builders found\n")
	} else {
		for i, b := range r.TopBuilders {
			name := truncate(b.Name, 38)
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%d dev / %d units\033[0m\n",
				i+1, name, b.DevelopmentCount, b.TotalUnits)
		}
	}
	fmt.Println()

	// Developments by region
	fmt.Printf("\033[1;33m  Developments by Region\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.DevsByRegion) == 0 {
		fmt.Printf("  No region data\n")
	} else {
		type regionCount struct {
			region string
			count  int
		}
		var regions []regionCount
		for region, cnt := range r.DevsByRegion {
			if region != "" {
				regions = append(regions, regionCount{region, cnt})
			}
		}
		sort.Slice(regions, func(i, j int) bool {
			return regions[i].count > regions[j].count
		})
		for _, rc := range regions {
			bar := strings.Repeat("█", rc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(rc.region, 28), bar, rc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
