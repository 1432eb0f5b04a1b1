package models

// Property status vocabulary. Every unit carries exactly one of these.
const (
	StatusKeyReady          = "key-ready"
	StatusCompletionSoon    = "completion-soon"
	StatusUnderConstruction = "under-construction"
	StatusOffPlan           = "off-plan"
	StatusSold              = "sold"
)

// Coordinates is a fully-populated lat/lng pair. A unit either has both
// components or no coordinates at all — never half a pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Distances holds optional proximity data in kilometres, as reported by the
// source feed. Nil means the feed did not supply a usable value.
type Distances struct {
	Beach   *float64
	Airport *float64
	Golf    *float64
}

// Unit is one marketable property instance in canonical form, regardless of
// which feed dialect it was parsed from.
type Unit struct {
	ID        string
	Reference string
	Source    string // feed name that produced this unit

	Title        string
	Price        *float64 // nil = price on request
	PropertyType string

	Bedrooms    int
	Bathrooms   int
	BuiltSize   float64
	PlotSize    float64
	TerraceSize float64

	Town        string
	Province    string
	Zone        string
	Coordinates *Coordinates

	Developer       string
	Development     string // raw name as given by the source
	DevelopmentSlug string

	Description string
	Images      []string // source feed order preserved
	Features    []string

	Status         string
	CompletionDate string // empty = unknown
	Distances      Distances
}
