package model

// Placement is one item positioned on a sheet. Row and Column are grid
// coordinates within the placement's zone; X and Y are the top-left corner
// in mm from the page's top-left corner. Copy is the companion index of a
// small label within its identifier (0 for everything else).
type Placement struct {
	Kind       ItemKind `json:"kind"`
	Identifier string   `json:"identifier"`
	Copy       int      `json:"copy,omitempty"`
	Zone       Zone     `json:"zone"`
	Row        int      `json:"row"`
	Column     int      `json:"column"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
}

// ZoneLayout is the grid a zone occupies on one sheet.
type ZoneLayout struct {
	Zone       Zone    `json:"zone"`
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	ItemWidth  float64 `json:"item_width"`
	ItemHeight float64 `json:"item_height"`
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
}

// Sheet is one printed page.
type Sheet struct {
	Index      int          `json:"index"`
	Placements []Placement  `json:"placements"`
	Zones      []ZoneLayout `json:"zones"`
}

// Count returns the number of placements of the given kind.
func (s Sheet) Count(kind ItemKind) int {
	n := 0
	for _, p := range s.Placements {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// CountZone returns the number of placements in the given zone.
func (s Sheet) CountZone(zone Zone) int {
	n := 0
	for _, p := range s.Placements {
		if p.Zone == zone {
			n++
		}
	}
	return n
}

// UsedArea returns the total footprint area of the sheet's placements.
func (s Sheet) UsedArea() float64 {
	var total float64
	for _, p := range s.Placements {
		total += p.Width * p.Height
	}
	return total
}

// Layout returns the zone layout for zone, if the sheet has one.
func (s Sheet) Layout(zone Zone) (ZoneLayout, bool) {
	for _, z := range s.Zones {
		if z.Zone == zone {
			return z, true
		}
	}
	return ZoneLayout{}, false
}

// SheetPlan is the full output of one packing pass.
type SheetPlan struct {
	ID          string       `json:"id"`
	Mode        LabelMode    `json:"mode"`
	Orientation Orientation  `json:"orientation"`
	Page        PageGeometry `json:"page"`
	Margin      float64      `json:"margin"`
	Gap         float64      `json:"gap"`
	Large       Footprint    `json:"large"`
	Small       Footprint    `json:"small"`
	Copies      int          `json:"copies"`
	Sheets      []Sheet      `json:"sheets"`
}

// IsEmpty reports whether the plan has no sheets.
func (p SheetPlan) IsEmpty() bool {
	return len(p.Sheets) == 0
}

// Count returns the number of placements of kind across all sheets.
func (p SheetPlan) Count(kind ItemKind) int {
	n := 0
	for _, s := range p.Sheets {
		n += s.Count(kind)
	}
	return n
}

// CountZone returns the number of placements in zone across all sheets.
func (p SheetPlan) CountZone(zone Zone) int {
	n := 0
	for _, s := range p.Sheets {
		n += s.CountZone(zone)
	}
	return n
}

// Identifiers returns the distinct identifiers of the plan's large
// placements, or of its small placements when there are none, in first
// appearance order.
func (p SheetPlan) Identifiers() []string {
	kind := KindLarge
	if p.Count(KindLarge) == 0 {
		kind = KindSmall
	}
	seen := make(map[string]bool)
	var ids []string
	for _, s := range p.Sheets {
		for _, pl := range s.Placements {
			if pl.Kind != kind || seen[pl.Identifier] {
				continue
			}
			seen[pl.Identifier] = true
			ids = append(ids, pl.Identifier)
		}
	}
	return ids
}

// Placements returns every placement in sheet order.
func (p SheetPlan) Placements() []Placement {
	var all []Placement
	for _, s := range p.Sheets {
		all = append(all, s.Placements...)
	}
	return all
}

// Efficiency returns the placed area as a percentage of the paper used.
func (p SheetPlan) Efficiency() float64 {
	total := p.Page.Area() * float64(len(p.Sheets))
	if total == 0 {
		return 0
	}
	var used float64
	for _, s := range p.Sheets {
		used += s.UsedArea()
	}
	return (used / total) * 100.0
}
