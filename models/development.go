package models

// Development is a building project aggregated from the units that the
// authoritative registry assigns to it.
type Development struct {
	Slug          string
	Name          string
	Developer     string
	DeveloperSlug string

	Town     string
	Zone     string
	Region   string
	Province string

	DeliveryDate    string
	DeliveryQuarter string // "Q2 2026", empty when the date is unparseable
	Status          string

	// TotalUnits counts the registry entries for this development, not the
	// units matched in the feed — those can differ.
	TotalUnits     int
	AvailableUnits int

	PriceFrom  float64
	PriceTo    float64
	PriceRange string

	PropertyTypes    []string
	BedroomRange     string
	MinBedrooms      int
	MaxBedrooms      int
	BedroomBreakdown []string

	SizeRange string
	MinSize   float64
	MaxSize   float64

	Amenities   []string
	HasPool     bool
	HasGym      bool
	HasSpa      bool
	HasGarden   bool
	HasSeaview  bool
	HasGolfview bool

	MainImage string
	Images    []string

	// UnitReferences is the full reference list from the registry, a
	// superset of (possibly disjoint from) the feed-matched units.
	UnitReferences []string
}

// Builder is the derived per-developer index over all developments.
type Builder struct {
	Slug             string
	Name             string
	DevelopmentCount int
	TotalUnits       int
	Developments     []string // development slugs
	PriceRange       string
	Regions          []string
	Towns            []string
}

// Stats holds dataset-wide figures for the diagnostic report and the stats
// accessor.
type Stats struct {
	TotalDevelopments      int
	TotalUnits             int
	TotalBuilders          int
	KeyReadyCount          int
	UnderConstructionCount int
	OffPlanCount           int
	AveragePrice           float64
	LowestPrice            float64
	PriceRange             string
}
