package models

// ReviewRecord is a single parent review attached to a facility.
type ReviewRecord struct {
	ID         string  `json:"id" yaml:"id"`
	AuthorID   string  `json:"authorId" yaml:"authorId"`
	AuthorName string  `json:"authorName" yaml:"authorName"`
	Rating     float64 `json:"rating" yaml:"rating"`
	Title      string  `json:"title" yaml:"title"`
	Text       string  `json:"text" yaml:"text"`
	Date       string  `json:"date" yaml:"date"`
	Likes      int     `json:"likes" yaml:"likes"`
	Dislikes   int     `json:"dislikes" yaml:"dislikes"`
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RawFacility holds an unprocessed row as read from a CSV dataset.
// Every value is kept as text until the Cleaner parses it.
type RawFacility struct {
	ID            string
	Name          string
	Description   string
	Address       string
	City          string
	State         string
	PostalCode    string
	County        string
	Latitude      string
	Longitude     string
	Phone         string
	Website       string
	Rating        string
	ReviewCount   string
	Tuition       string
	Hours         string
	AgeRange      string
	Curriculum    string
	ProgramType   string
	LicenseNumber string
	Capacity      string
	DataSource    string
	Features      string
	Images        string
}

// FacilityRecord is the canonical, validated preschool record. Records are
// loaded once and never modified afterwards.
type FacilityRecord struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description" yaml:"description"`
	Address       string         `json:"address" yaml:"address"`
	City          string         `json:"city" yaml:"city"`
	State         string         `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode    string         `json:"zip_code" yaml:"zip_code"`
	County        string         `json:"county" yaml:"county"`
	Latitude      *float64       `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Phone         string         `json:"phone" yaml:"phone"`
	Website       string         `json:"website" yaml:"website"`
	Rating        float64        `json:"rating" yaml:"rating"`
	ReviewCount   int            `json:"reviewCount" yaml:"reviewCount"`
	Tuition       string         `json:"tuition" yaml:"tuition"`
	Hours         string         `json:"hours" yaml:"hours"`
	AgeRange      string         `json:"ageRange" yaml:"ageRange"`
	Curriculum    string         `json:"curriculum,omitempty" yaml:"curriculum,omitempty"`
	ProgramType   string         `json:"program_type,omitempty" yaml:"program_type,omitempty"`
	LicenseNumber string         `json:"license_number,omitempty" yaml:"license_number,omitempty"`
	Capacity      int            `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	DataSource    string         `json:"data_source,omitempty" yaml:"data_source,omitempty"`
	Features      []string       `json:"features" yaml:"features"`
	Images        []string       `json:"images" yaml:"images"`
	Reviews       []ReviewRecord `json:"reviews" yaml:"reviews"`
}

// Coordinates reports the record's location. ok is false unless both
// latitude and longitude are set.
func (f *FacilityRecord) Coordinates() (c Coordinates, ok bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: *f.Latitude, Longitude: *f.Longitude}, true
}
