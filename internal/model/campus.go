package model

import "math"

// campusBuilding is the compact table row used to build the built-in campus.
type campusBuilding struct {
	slug, name string
	kind       Kind
	x, z       float64
	w, h, d    float64
	color      string
	rotation   float64
	details    string
}

var campusTable = []campusBuilding{
	// Academic blocks
	{"a-block", "A Block", KindAcademic, -15, 0, 10, 8, 10, "#D04848", 0, "Main academic block housing classrooms, labs, and faculty offices."},
	{"b-block", "B Block", KindAcademic, -5, 5, 10, 6, 10, "#F7B787", 0, "Houses computer science and IT departments with specialized labs."},
	{"c-block", "C Block", KindAcademic, 5, 5, 10, 7, 10, "#F7B787", 0, "Engineering departments and research facilities."},
	{"d-block", "D Block", KindAcademic, 15, 0, 10, 8, 10, "#F7B787", 0, "Lecture halls and seminar rooms."},
	{"e-block", "E Block", KindAcademic, 15, -10, 10, 5, 10, "#F7B787", 0, "Administrative offices and faculty chambers."},
	{"h-block", "H Block", KindAcademic, 5, -10, 10, 6, 10, "#F7B787", 0, "Science labs and research centers."},
	{"j-block", "J Block", KindAcademic, -5, -10, 10, 7, 10, "#F7B787", 0, "Management and humanities departments."},
	{"library", "Central Library", KindAcademic, -15, -10, 10, 10, 10, "#6499E9", 0, "Main library with study spaces, digital resources, and book collections."},

	// Hostel row at the back
	{"hostel-a", "Hostel A", KindResidence, -30, -30, 8, 12, 8, "#A6CF98", 0, "First-year undergraduate student housing with common areas and dining facilities."},
	{"hostel-b", "Hostel B", KindResidence, -20, -30, 8, 12, 8, "#A6CF98", 0, "Second-year undergraduate student housing."},
	{"hostel-c", "Hostel C", KindResidence, -10, -30, 8, 12, 8, "#A6CF98", 0, "Third-year undergraduate student housing."},
	{"hostel-d", "Hostel D", KindResidence, 0, -30, 8, 12, 8, "#A6CF98", 0, "Fourth-year undergraduate student housing."},
	{"hostel-e", "Hostel E", KindResidence, 10, -30, 8, 12, 8, "#A6CF98", 0, "Postgraduate student housing."},
	{"hostel-f", "Hostel F", KindResidence, 20, -30, 8, 12, 8, "#A6CF98", 0, "Research scholar and PhD student housing."},
	{"hostel-g", "Hostel G", KindResidence, 30, -30, 8, 12, 8, "#A6CF98", 0, "International student housing with multicultural facilities."},

	// Front hostels
	{"hostel-j", "J Hostel", KindHostel, -20, 20, 10, 8, 10, "#F1C93B", 0, "Male hostel with modern amenities."},
	{"hostel-k", "K Hostel", KindHostel, -10, 20, 10, 8, 10, "#F1C93B", 0, "Female hostel with secure access."},
	{"hostel-l", "L Hostel", KindHostel, 0, 20, 10, 8, 10, "#F1C93B", 0, "Male hostel with recreational facilities."},
	{"hostel-m", "M Hostel", KindHostel, 10, 20, 10, 8, 10, "#F1C93B", 0, "Female hostel with study lounges."},
	{"hostel-n", "N Hostel", KindHostel, 20, 20, 10, 8, 10, "#F1C93B", 0, "Newly constructed co-ed hostel."},
	{"international-hostel", "International Hostel", KindResidence, 22, 24, 8, 12, 8, "#A6CF98", 0, "International student housing with multicultural facilities."},

	// Other facilities
	{"cafe", "Cafeteria", KindDining, 0, 15, 15, 4, 10, "#FFB996", 0, "Main student cafeteria with multiple food options and seating areas."},
	{"mess", "Mess", KindDining, 0, 25, 20, 5, 12, "#FFCF81", 0, "Student dining hall serving breakfast, lunch, and dinner."},
	{"parking", "Parking Area", KindFacility, 25, 25, 30, 1, 20, "#808080", math.Pi / 6, "Main parking lot for students, faculty, and visitors."},
	{"sports-complex", "Sports Complex", KindFacility, -25, 15, 25, 3, 15, "#7FB77E", 0, "Indoor and outdoor sports facilities including gym, swimming pool, and courts."},
	{"auditorium", "Auditorium", KindFacility, 25, -15, 18, 8, 12, "#B1AFFF", 0, "Main auditorium for events, conferences, and performances."},
}

// CampusBuildings returns a fresh copy of the built-in campus buildings.
func CampusBuildings() []Building {
	out := make([]Building, len(campusTable))
	for i, cb := range campusTable {
		b := NewBuilding(cb.name, cb.kind, cb.x, cb.z, cb.w, cb.h, cb.d)
		b.Slug = cb.slug
		b.Color = cb.color
		b.Rotation = cb.rotation
		b.Details = cb.details
		out[i] = b
	}
	return out
}

// CampusCorridors returns the road exclusion bands of the built-in campus.
// These bands are the placement contract; they only approximate the road meshes.
func CampusCorridors() []Corridor {
	return []Corridor{
		{Label: "Main vertical road", Axis: AxisZ, Offset: 0, HalfWidth: 3, Center: 0, HalfExtent: 50},
		{Label: "Main horizontal road", Axis: AxisX, Offset: 0, HalfWidth: 3, Center: 0, HalfExtent: 50},
		{Label: "Hostel row connector", Axis: AxisX, Offset: 20, HalfWidth: 2, Center: 0, HalfExtent: 25},
		{Label: "Back row connector", Axis: AxisX, Offset: -30, HalfWidth: 2, Center: 0, HalfExtent: 40},
		{Label: "West block connector", Axis: AxisX, Offset: -15, HalfWidth: 2, Center: -15, HalfExtent: 15},
		{Label: "East block connector", Axis: AxisX, Offset: -15, HalfWidth: 2, Center: 15, HalfExtent: 15},
	}
}

// CampusCatalog returns the obstacle catalog of the built-in campus.
func CampusCatalog() Catalog {
	return CatalogFromBuildings(CampusBuildings(), CampusCorridors())
}

// FindBuildingBySlug returns a pointer to the first building with the given slug, or nil.
func FindBuildingBySlug(buildings []Building, slug string) *Building {
	for i := range buildings {
		if buildings[i].Slug == slug {
			return &buildings[i]
		}
	}
	return nil
}
