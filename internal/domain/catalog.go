package domain

// District is an administrative region grouping churches.
type District struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Church is a congregation unit; every church belongs to a district.
type Church struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DistrictID string `json:"districtId"`
}

// SuggestedChurch is the district/church pre-selection returned by the
// director lookup.
type SuggestedChurch struct {
	DistrictID string `json:"districtId"`
	ChurchID   string `json:"churchId"`
}

const unknownName = "Nao informado"

// Catalog holds the district/church reference data fetched from the backend.
// It is immutable from the wizard's perspective.
type Catalog struct {
	Districts []District
	Churches  []Church
}

// DistrictName resolves a district ID to its display name.
func (c *Catalog) DistrictName(id string) string {
	for _, d := range c.Districts {
		if d.ID == id {
			return d.Name
		}
	}
	return unknownName
}

// ChurchName resolves a church ID to its display name.
func (c *Catalog) ChurchName(id string) string {
	for _, ch := range c.Churches {
		if ch.ID == id {
			return ch.Name
		}
	}
	return unknownName
}

// ChurchesByDistrict returns the churches belonging to the district.
func (c *Catalog) ChurchesByDistrict(districtID string) []Church {
	var out []Church
	for _, ch := range c.Churches {
		if ch.DistrictID == districtID {
			out = append(out, ch)
		}
	}
	return out
}

// HasDistrict reports whether the district exists in the catalog.
func (c *Catalog) HasDistrict(id string) bool {
	for _, d := range c.Districts {
		if d.ID == id {
			return true
		}
	}
	return false
}

// HasChurch reports whether the church exists in the catalog.
func (c *Catalog) HasChurch(id string) bool {
	for _, ch := range c.Churches {
		if ch.ID == id {
			return true
		}
	}
	return false
}

// ChurchInDistrict reports whether churchID exists and belongs to districtID.
func (c *Catalog) ChurchInDistrict(churchID, districtID string) bool {
	for _, ch := range c.Churches {
		if ch.ID == churchID && ch.DistrictID == districtID {
			return true
		}
	}
	return false
}
