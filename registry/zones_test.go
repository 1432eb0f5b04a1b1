package registry

import "testing"

func TestTownFromZone(t *testing.T) {
	tests := []struct {
		zone string
		want string
	}{
		{"Aguas Nuevas", "Torrevieja"},
		{"aguas nuevas", "Torrevieja"},
		{"  La Zenia  ", "Orihuela Costa"},
		{"Serena Golf", "Los Alcázares"},
		{"Cumbre del Sol", "Benitachell"},
		{"Nowhere Special", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TownFromZone(tt.zone); got != tt.want {
			t.Errorf("TownFromZone(%q) = %q; want %q", tt.zone, got, tt.want)
		}
	}
}

func TestResolveTownPrecedence(t *testing.T) {
	tests := []struct {
		zone     string
		feedTown string
		want     string
	}{
		// overlay beats the feed town
		{"Aguas Nuevas", "Alicante", "Torrevieja"},
		// feed town used when zone unknown
		{"Unknown Zone", "Benidorm", "Benidorm"},
		// raw zone used when feed town empty
		{"Unknown Zone", "", "Unknown Zone"},
		// fixed fallback when everything is empty
		{"", "", "Costa Blanca"},
	}

	for _, tt := range tests {
		if got := ResolveTown(tt.zone, tt.feedTown); got != tt.want {
			t.Errorf("ResolveTown(%q, %q) = %q; want %q", tt.zone, tt.feedTown, got, tt.want)
		}
	}
}

func TestRegion(t *testing.T) {
	tests := []struct {
		town string
		want string
	}{
		{"Los Alcázares", "Costa Cálida"},
		{"San Javier", "Costa Cálida"},
		{"Jávea", "Costa Blanca North"},
		{"Benidorm", "Costa Blanca North"},
		{"Torrevieja", "Costa Blanca South"},
		{"Orihuela Costa", "Costa Blanca South"},
		{"", "Costa Blanca South"},
	}

	for _, tt := range tests {
		if got := Region(tt.town); got != tt.want {
			t.Errorf("Region(%q) = %q; want %q", tt.town, got, tt.want)
		}
	}
}

func TestRegionMurciaBeatsNorth(t *testing.T) {
	// a Murcia resort containing a north-sounding substring stays Cálida
	if got := Region("Mar Menor Golf Resort"); got != RegionCostaCalida {
		t.Errorf("Region(Mar Menor Golf Resort) = %q; want %q", got, RegionCostaCalida)
	}
}
