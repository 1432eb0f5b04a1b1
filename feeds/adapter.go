package feeds

import (
	"fmt"
	"strings"

	"newbuild-aggregator/models"
	"newbuild-aggregator/utils"
)

// Adapter parses one raw feed document dialect into canonical units.
// Implementations skip individual malformed records and never abort the
// whole document over a single bad entry.
type Adapter interface {
	Parse(raw []byte) ([]*models.Unit, error)
}

// AdapterFor returns the adapter for a declared feed format. The format set
// is closed: "general" (flat per-property records) and "kyero"
// (marketplace/syndication style).
func AdapterFor(format string, logger *utils.Logger) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "general":
		return &generalAdapter{logger: logger}, nil
	case "kyero":
		return &kyeroAdapter{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown feed format %q", format)
	}
}
