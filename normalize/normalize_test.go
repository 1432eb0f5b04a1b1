package normalize

import (
	"testing"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64 // 0 means nil expected
	}{
		{"250000", 250000},
		{"250,000", 250000},
		{"€274,900", 274900},
		{"1200.50", 1200.50},
		{"", 0},
		{"Price on request", 0},
		{"0", 0},
	}

	for _, tt := range tests {
		got := Price(tt.raw)
		if tt.want == 0 {
			if got != nil {
				t.Errorf("Price(%q) = %v; want nil", tt.raw, *got)
			}
			continue
		}
		if got == nil {
			t.Errorf("Price(%q) = nil; want %.2f", tt.raw, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("Price(%q) = %.2f; want %.2f", tt.raw, *got, tt.want)
		}
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Key Ready", "key-ready"},
		{"READY NOW", "key-ready"},
		{"Llave en mano", "key-ready"},
		{"Sold", "sold"},
		{"Vendido", "sold"},
		{"Off-plan", "off-plan"},
		{"sobre plano", "off-plan"},
		{"Completion in 3 months", "completion-soon"},
		{"Entrega próxima", "completion-soon"},
		{"Under construction", "under-construction"},
		{"", "under-construction"},
		{"anything else", "under-construction"},
	}

	for _, tt := range tests {
		if got := Status(tt.raw); got != tt.want {
			t.Errorf("Status(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStatusKeywordPriority(t *testing.T) {
	// "key" outranks "sold" when both appear
	if got := Status("sold out, key ready units left"); got != "key-ready" {
		t.Errorf("Status priority = %q; want key-ready", got)
	}
}

func TestPropertyType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Apartamento", "apartment"},
		{"FLAT", "apartment"},
		{"Ático", "penthouse"},
		{"atico", "penthouse"},
		{"Chalet", "villa"},
		{"adosado", "townhouse"},
		{"Town House", "townhouse"},
		{"bungalow", "bungalow"},
		{"duplex", "duplex"},
		{"castle", "apartment"},
		{"", "apartment"},
	}

	for _, tt := range tests {
		if got := PropertyType(tt.raw); got != tt.want {
			t.Errorf("PropertyType(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCoordinatesAllOrNothing(t *testing.T) {
	if got := Coordinates("37.97", "-0.68"); got == nil {
		t.Fatal("Coordinates with two valid components = nil; want pair")
	} else if got.Lat != 37.97 || got.Lng != -0.68 {
		t.Errorf("Coordinates = %+v; want {37.97 -0.68}", got)
	}

	bad := []struct{ lat, lng string }{
		{"37.97", ""},
		{"", "-0.68"},
		{"37.97", "not-a-number"},
		{"NaN", "-0.68"},
		{"", ""},
	}
	for _, tt := range bad {
		if got := Coordinates(tt.lat, tt.lng); got != nil {
			t.Errorf("Coordinates(%q, %q) = %+v; want nil", tt.lat, tt.lng, got)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"GOMERA STAR", "gomera-star"},
		{"Mirasal 2", "mirasal-2"},
		{"  Blue   Med  Invest ", "blue-med-invest"},
		{"Águila's Place!", "guilas-place"},
		{"under_score__name", "under-score-name"},
		{"-leading-and-trailing-", "leading-and-trailing"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.raw); got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"GOMERA STAR", "Mirasal 2", "los-balcones", "Serena Golf Resort"}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"2.0", 2},
		{"", 0},
		{"-1", 0},
		{"studio", 0},
	}

	for _, tt := range tests {
		if got := Count(tt.raw); got != tt.want {
			t.Errorf("Count(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	if got := Distance("1.5"); got == nil || *got != 1.5 {
		t.Errorf("Distance(\"1.5\") = %v; want 1.5", got)
	}
	for _, raw := range []string{"", "0", "-3", "near"} {
		if got := Distance(raw); got != nil {
			t.Errorf("Distance(%q) = %v; want nil", raw, *got)
		}
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"<p>Sea views</p>", "Sea views"},
		{"Great&nbsp;location &amp; pool", "Great location & pool"},
		{"New build #ref:N9525 near the beach", "New build near the beach"},
		{"  spaced   out  ", "spaced out"},
		{"<div><b>Bold</b> and <i>italic</i></div>", "Bold and italic"},
	}

	for _, tt := range tests {
		if got := StripMarkup(tt.raw); got != tt.want {
			t.Errorf("StripMarkup(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{274900, "€274,900"},
		{1250000, "€1,250,000"},
		{900, "€900"},
		{199000, "€199,000"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q; want %q", tt.price, got, tt.want)
		}
	}
}
