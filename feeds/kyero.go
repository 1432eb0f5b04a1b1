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

// descLanguages is the ordered language preference for multilingual
// descriptions: the first non-empty entry wins.
var descLanguages = []string{"en", "es", "de", "fr", "nl", "sv", "no", "da"}

// kyeroProperty is one nested record in the marketplace/syndication dialect.
type kyeroProperty struct {
	ID          string `xml:"id"`
	Ref         string `xml:"ref"`
	Price       string `xml:"price"`
	Currency    string `xml:"currency"`
	Type        string `xml:"type"`
	Town        string `xml:"town"`
	Province    string `xml:"province"`
	NewBuild    string `xml:"new_build"`
	Beds        string `xml:"beds"`
	Baths       string `xml:"baths"`
	Pool        string `xml:"pool"`
	SurfaceArea struct {
		Built string `xml:"built"`
		Plot  string `xml:"plot"`
	} `xml:"surface_area"`
	Location struct {
		Latitude  string `xml:"latitude"`
		Longitude string `xml:"longitude"`
	} `xml:"location"`
	LocationDetail string       `xml:"location_detail"`
	Desc           kyeroDesc    `xml:"desc"`
	Features       []string     `xml:"features>feature"`
	Images         []kyeroImage `xml:"images>image"`
}

type kyeroImage struct {
	URL string `xml:"url"`
}

type kyeroDesc struct {
	En string `xml:"en"`
	Es string `xml:"es"`
	De string `xml:"de"`
	Fr string `xml:"fr"`
	Nl string `xml:"nl"`
	Sv string `xml:"sv"`
	No string `xml:"no"`
	Da string `xml:"da"`
}

func (d *kyeroDesc) byLanguage(lang string) string {
	switch lang {
	case "en":
		return d.En
	case "es":
		return d.Es
	case "de":
		return d.De
	case "fr":
		return d.Fr
	case "nl":
		return d.Nl
	case "sv":
		return d.Sv
	case "no":
		return d.No
	case "da":
		return d.Da
	}
	return ""
}

// kyeroAdapter parses the marketplace/syndication dialect. Only records
// flagged as new builds are kept.
type kyeroAdapter struct {
	logger *utils.Logger
}

func (a *kyeroAdapter) Parse(raw []byte) ([]*models.Unit, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = false

	var units []*models.Unit
	skipped := 0
	resale := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(units) == 0 {
				return nil, fmt.Errorf("kyero: decode: %w", err)
			}
			a.logger.Warn("[kyero] document truncated after %d units: %v", len(units), err)
			break
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "property" {
			continue
		}

		var p kyeroProperty
		if err := dec.DecodeElement(&p, &se); err != nil {
			skipped++
			continue
		}

		if p.NewBuild != "1" {
			resale++
			continue
		}

		u := a.toUnit(&p)
		if u == nil {
			skipped++
			continue
		}
		units = append(units, u)
	}

	a.logger.Info("[kyero] parsed %d new-build units (%d resale filtered, %d records skipped)",
		len(units), resale, skipped)
	return units, nil
}

func (a *kyeroAdapter) toUnit(p *kyeroProperty) *models.Unit {
	ref := strings.TrimSpace(p.Ref)
	id := strings.TrimSpace(p.ID)
	if ref == "" {
		ref = id
	}
	if id == "" {
		id = ref
	}
	if ref == "" {
		return nil
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if u := strings.TrimSpace(img.URL); u != "" {
			images = append(images, u)
		}
	}

	features := nonEmptyStrings(p.Features)
	if p.Pool == "1" {
		features = append(features, "pool")
	}

	province := normalize.CleanText(p.Province)
	if province == "" {
		province = "Alicante"
	}

	return &models.Unit{
		ID:              id,
		Reference:       ref,
		Title:           fmt.Sprintf("Property %s", ref),
		Price:           normalize.Price(p.Price),
		PropertyType:    normalize.PropertyType(p.Type),
		Bedrooms:        normalize.Count(p.Beds),
		Bathrooms:       normalize.Count(p.Baths),
		BuiltSize:       normalize.Size(p.SurfaceArea.Built),
		PlotSize:        normalize.Size(p.SurfaceArea.Plot),
		Town:            normalize.CleanText(p.Town),
		Province:        province,
		Zone:            normalize.CleanText(p.LocationDetail),
		Coordinates:     normalize.Coordinates(p.Location.Latitude, p.Location.Longitude),
		Developer:       "Unknown Developer",
		Development:     "Unknown Development",
		DevelopmentSlug: normalize.Slugify("Unknown Development"),
		Description:     a.pickDescription(&p.Desc),
		Images:          images,
		Features:        features,
		Status:          normalize.Status(""),
	}
}

// pickDescription returns the first non-empty description in language
// preference order, with source reference codes stripped.
func (a *kyeroAdapter) pickDescription(d *kyeroDesc) string {
	for _, lang := range descLanguages {
		if raw := d.byLanguage(lang); strings.TrimSpace(raw) != "" {
			return normalize.StripMarkup(raw)
		}
	}
	return ""
}
