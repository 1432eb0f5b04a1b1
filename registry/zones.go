package registry

import "strings"

// Region labels.
const (
	RegionCostaCalida      = "Costa Cálida"
	RegionCostaBlancaNorth = "Costa Blanca North"
	RegionCostaBlancaSouth = "Costa Blanca South"
)

// townFallback is used when neither the overlay, the feed, nor the raw zone
// gives a usable town.
const townFallback = "Costa Blanca"

// zoneToTown corrects town attribution from the more granular zone field.
// Feeds are known to mis-tag towns; this table is authoritative.
var zoneToTown = map[string]string{
	// Torrevieja zones
	"playa de el cura":     "Torrevieja",
	"playa del cura":       "Torrevieja",
	"playa el cura":        "Torrevieja",
	"la mata":              "Torrevieja",
	"aguas nuevas":         "Torrevieja",
	"los balcones":         "Torrevieja",
	"la siesta":            "Torrevieja",
	"el chaparral":         "Torrevieja",
	"el limonar":           "Torrevieja",
	"acequion":             "Torrevieja",
	"playa los naufragos":  "Torrevieja",
	"playa los locos":      "Torrevieja",
	"centro":               "Torrevieja",

	// Orihuela Costa zones
	"la zenia":             "Orihuela Costa",
	"playa flamenca":       "Orihuela Costa",
	"cabo roig":            "Orihuela Costa",
	"campoamor":            "Orihuela Costa",
	"villamartin":          "Orihuela Costa",
	"las filipinas":        "Orihuela Costa",
	"pau 26":               "Orihuela Costa",
	"dehesa de campoamor":  "Orihuela Costa",
	"la florida":           "Orihuela Costa",
	"los dolses":           "Orihuela Costa",
	"las ramblas":          "Orihuela Costa",
	"dream hills":          "Orihuela Costa",
	"la regia":             "Orihuela Costa",
	"aguamarina":           "Orihuela Costa",
	"punta prima":          "Orihuela Costa",
	"los altos":            "Orihuela Costa",

	// Pilar de la Horadada zones
	"mil palmeras":         "Pilar de la Horadada",
	"torre de la horadada": "Pilar de la Horadada",
	"el mojon":             "Pilar de la Horadada",

	// Guardamar zones
	"el raso":              "Guardamar del Segura",
	"los gavilanes":        "Guardamar del Segura",

	// Rojales / Quesada zones
	"doña pepa":             "Rojales",
	"ciudad quesada":        "Ciudad Quesada",
	"quesada":               "Ciudad Quesada",
	"formentera del segura": "Formentera del Segura",

	// Golf resorts (inland)
	"vistabella golf":      "Vistabella Golf",
	"vistabella":           "Vistabella Golf",
	"lo romero golf":       "Lo Romero Golf",
	"lo romero":            "Lo Romero Golf",
	"la finca golf":        "La Finca Golf",
	"la finca":             "La Finca Golf",
	"las colinas golf":     "Las Colinas Golf",
	"las colinas":          "Las Colinas Golf",

	// Costa Cálida / Mar Menor zones
	"los narejos":          "Los Alcázares",
	"lo serena golf":       "Los Alcázares",
	"serena golf":          "Los Alcázares",
	"lo serena":            "Los Alcázares",
	"mar menor":            "San Javier",
	"mar menor golf":       "San Javier",
	"parque del olivo":     "San Javier",
	"los antolinos":        "San Pedro del Pinatar",
	"el abito":             "Torre Pacheco",
	"mar de plata":         "Puerto de Mazarrón",
	"country club":         "Mazarrón",
	"antreos":              "Alhama de Murcia",

	// Costa Blanca North zones
	"cumbre del sol":       "Benitachell",
	"golden valley":        "Benitachell",
	"valle del sol":        "Jávea",
	"los llomios":          "Jávea",
	"sierra de altea":      "Altea",
	"campana garden":       "Finestrat",
	"muchavista":           "El Campello",
	"la tellerola":         "Villajoyosa",

	// other inland
	"sector 2":             "Dolores",
	"benfis park":          "Benferri",
	"campo":                "Pinoso",
}

// murciaAreas is checked first: the most specific set, so a Murcia golf
// resort name never collides with a Costa Blanca match.
var murciaAreas = []string{
	"murcia", "mazarron", "mazarrón", "cartagena", "los alcazares", "los alcázares",
	"alcazares", "san javier", "san pedro del pinatar", "torre pacheco", "la manga",
	"mar menor", "santiago de la ribera", "aguilas", "fuente alamo", "sucina",
	"roldan", "lo pagan", "los narejos", "los urrutias", "la union",
	"puerto de mazarron", "bolnuevo", "isla plana",
	"serena golf", "lo serena", "santa rosalia", "torre del morro",
	"roda golf", "hacienda riquelme", "mar menor golf", "la torre golf",
	"alhama de murcia",
}

var northAreas = []string{
	"javea", "jávea", "xabia", "denia", "moraira", "altea", "calpe", "benidorm",
	"villajoyosa", "finestrat", "alfaz", "albir", "benitachell", "teulada",
	"benissa", "pedreguer", "ondara", "gata", "els poblets", "la nucia",
	"polop", "cumbre del sol", "pego", "oliva", "el campello",
}

// TownFromZone returns the authoritative town for a known zone, or "" when
// the zone is not in the overlay.
func TownFromZone(zone string) string {
	return zoneToTown[strings.ToLower(strings.TrimSpace(zone))]
}

// ResolveTown applies the town precedence rule: the zone overlay wins, then
// the feed-reported town, then the raw zone string, then a fixed fallback.
// The order exists because feeds mis-tag towns more often than the curated
// registry mis-tags zones.
func ResolveTown(zone, feedTown string) string {
	if t := TownFromZone(zone); t != "" {
		return t
	}
	if t := strings.TrimSpace(feedTown); t != "" {
		return t
	}
	if z := strings.TrimSpace(zone); z != "" {
		return z
	}
	return townFallback
}

// Region classifies a town name into one of the three coastal regions.
func Region(town string) string {
	t := strings.ToLower(town)

	for _, area := range murciaAreas {
		if strings.Contains(t, area) {
			return RegionCostaCalida
		}
	}
	for _, area := range northAreas {
		if strings.Contains(t, area) {
			return RegionCostaBlancaNorth
		}
	}
	return RegionCostaBlancaSouth
}
