package models

import "strconv"

// District is a numbered electoral district.
type District struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
}

// ConstituencyCode is the member constituency value that maps to this district.
func (d *District) ConstituencyCode() string {
	return strconv.Itoa(d.Number)
}

// Commune is a named commune; communes belong to districts many-to-many.
type Commune struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DistrictCommuneRow is one district_commune link joined with its commune.
type DistrictCommuneRow struct {
	DistrictID int64
	Commune    Commune
}

// DistrictWithCommunes for GET /territory/districts.
type DistrictWithCommunes struct {
	District District  `json:"district"`
	Communes []Commune `json:"communes"`
}

// DistrictWithMembers for GET /territory/districts?include=members and
// GET /territory/districts/{id}.
type DistrictWithMembers struct {
	DistrictWithCommunes
	Members []Member `json:"members"`
}
