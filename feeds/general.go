package feeds

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"newbuild-aggregator/models"
	"newbuild-aggregator/normalize"
	"newbuild-aggregator/utils"
)

// generalProperty is one flat record in the "general" dialect.
type generalProperty struct {
	Reference       string   `xml:"reference"`
	Title           string   `xml:"title"`
	Price           string   `xml:"price"`
	Type            string   `xml:"type"`
	Bedrooms        string   `xml:"bedrooms"`
	Bathrooms       string   `xml:"bathrooms"`
	BuiltSize       string   `xml:"built_size"`
	PlotSize        string   `xml:"plot_size"`
	TerraceSize     string   `xml:"terrace_size"`
	Town            string   `xml:"town"`
	Province        string   `xml:"province"`
	Zone            string   `xml:"zone"`
	Developer       string   `xml:"developer"`
	Development     string   `xml:"development"`
	Description     string   `xml:"description"`
	Status          string   `xml:"status"`
	CompletionDate  string   `xml:"completion_date"`
	Images          []string `xml:"images>image"`
	Features        []string `xml:"features>feature"`
	Latitude        string   `xml:"latitude"`
	Longitude       string   `xml:"longitude"`
	DistanceBeach   string   `xml:"distance_beach"`
	DistanceAirport string   `xml:"distance_airport"`
	DistanceGolf    string   `xml:"distance_golf"`
}

// generalAdapter parses the flat per-property dialect.
type generalAdapter struct {
	logger *utils.Logger
}

func (a *generalAdapter) Parse(raw []byte) ([]*models.Unit, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = false

	var units []*models.Unit
	skipped := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(units) == 0 {
				return nil, fmt.Errorf("general: decode: %w", err)
			}
			// keep whatever parsed before the document broke
			a.logger.Warn("[general] document truncated after %d units: %v", len(units), err)
			break
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "property" {
			continue
		}

		var p generalProperty
		if err := dec.DecodeElement(&p, &se); err != nil {
			skipped++
			continue
		}

		u := a.toUnit(&p)
		if u == nil {
			skipped++
			continue
		}
		units = append(units, u)
	}

	a.logger.Info("[general] parsed %d units (%d records skipped)", len(units), skipped)
	return units, nil
}

func (a *generalAdapter) toUnit(p *generalProperty) *models.Unit {
	ref := strings.TrimSpace(p.Reference)
	if ref == "" {
		return nil
	}

	development := normalize.CleanText(p.Development)
	if development == "" {
		development = "Unknown Development"
	}
	developer := normalize.CleanText(p.Developer)
	if developer == "" {
		developer = "Unknown Developer"
	}
	title := normalize.CleanText(p.Title)
	if title == "" {
		title = fmt.Sprintf("Property %s", ref)
	}
	province := normalize.CleanText(p.Province)
	if province == "" {
		province = "Alicante"
	}

	return &models.Unit{
		ID:              ref,
		Reference:       ref,
		Title:           title,
		Price:           normalize.Price(p.Price),
		PropertyType:    normalize.PropertyType(p.Type),
		Bedrooms:        normalize.Count(p.Bedrooms),
		Bathrooms:       normalize.Count(p.Bathrooms),
		BuiltSize:       normalize.Size(p.BuiltSize),
		PlotSize:        normalize.Size(p.PlotSize),
		TerraceSize:     normalize.Size(p.TerraceSize),
		Town:            normalize.CleanText(p.Town),
		Province:        province,
		Zone:            normalize.CleanText(p.Zone),
		Coordinates:     normalize.Coordinates(p.Latitude, p.Longitude),
		Developer:       developer,
		Development:     development,
		DevelopmentSlug: normalize.Slugify(development),
		Description:     normalize.StripMarkup(p.Description),
		Images:          nonEmptyStrings(p.Images),
		Features:        nonEmptyStrings(p.Features),
		Status:          normalize.Status(p.Status),
		CompletionDate:  strings.TrimSpace(p.CompletionDate),
		Distances: models.Distances{
			Beach:   normalize.Distance(p.DistanceBeach),
			Airport: normalize.Distance(p.DistanceAirport),
			Golf:    normalize.Distance(p.DistanceGolf),
		},
	}
}

func nonEmptyStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
