package model

// Orientation is the paper orientation of a print pass.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ISO A4 paper size in mm.
const (
	A4ShortEdge = 210.0
	A4LongEdge  = 297.0
)

// ParseOrientation maps a user string to an Orientation. Anything that is
// not "landscape" is portrait.
func ParseOrientation(s string) Orientation {
	if Orientation(s) == Landscape {
		return Landscape
	}
	return Portrait
}

func (o Orientation) String() string {
	if o == Landscape {
		return string(Landscape)
	}
	return string(Portrait)
}

// Footprint is the outer size of one printable item in mm.
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns width x height.
func (f Footprint) Area() float64 {
	return f.Width * f.Height
}

// PageGeometry is the physical sheet size for an orientation.
type PageGeometry struct {
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
}

// Area returns the page area in sq mm.
func (p PageGeometry) Area() float64 {
	return p.Width * p.Height
}

// GridConfig describes how many items of one footprint fit on a page.
// Columns and Rows are always at least 1.
type GridConfig struct {
	Columns      int     `json:"columns"`
	Rows         int     `json:"rows"`
	PerPage      int     `json:"per_page"`
	UsableWidth  float64 `json:"usable_width"`  // page width minus both margins
	UsableHeight float64 `json:"usable_height"` // page height minus both margins
}

// ItemKind distinguishes primary labels from their compact companions.
type ItemKind string

const (
	KindLarge ItemKind = "large"
	KindSmall ItemKind = "small"
)

// Zone is the spatial region of a sheet a placement was assigned to.
type Zone string

const (
	ZoneLarge  Zone = "large"        // large-item grid
	ZoneFiller Zone = "filler-small" // empty cells of the large grid's partial row
	ZoneSide   Zone = "side-small"   // strip to the right of the large grid
	ZoneBottom Zone = "bottom-small" // strip below the large grid and side strip
	ZoneSmall  Zone = "small-grid"   // uniform small-label mode
)
