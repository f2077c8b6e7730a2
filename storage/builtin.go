package storage

import (
	"context"

	"preschool-finder/models"
)

// BuiltinProvider serves the small reference set compiled into the binary.
// It is also the fallback when the configured provider yields nothing.
type BuiltinProvider struct{}

func (BuiltinProvider) Name() string { return "builtin" }

func (BuiltinProvider) LoadAll(_ context.Context) ([]*models.FacilityRecord, error) {
	return Builtin(), nil
}

func coord(v float64) *float64 { return &v }

// Builtin returns a fresh copy of the reference record set.
func Builtin() []*models.FacilityRecord {
	return []*models.FacilityRecord{
		{
			ID:          "preschool-1",
			Name:        "Sunshine Montessori Academy",
			Description: "A nurturing Montessori environment focused on independence and hands-on learning.",
			Address:     "123 Valencia St",
			City:        "San Francisco",
			State:       "CA",
			PostalCode:  "94103",
			County:      "San Francisco",
			Latitude:    coord(37.7749),
			Longitude:   coord(-122.4194),
			Phone:       "(415) 555-0142",
			Website:     "https://sunshinemontessori.example.com",
			Rating:      4.7,
			ReviewCount: 128,
			Tuition:     "$1,800 - $2,200/month",
			Hours:       "7:30 AM - 6:00 PM",
			AgeRange:    "2-5 years",
			Curriculum:  "Montessori",
			Features:    []string{"Organic meals", "Outdoor playground", "Bilingual staff"},
			Images:      []string{"https://example.com/images/sunshine1.jpg"},
			Reviews:     []models.ReviewRecord{
				{
					ID:         "review-1",
					AuthorID:   "user-12",
					AuthorName: "Maria G.",
					Rating:     5,
					Title:      "Our daughter loves it",
					Text:       "Caring teachers and a calm classroom.",
					Date:       "2024-03-02",
					Likes:      14,
				},
				{
					ID:         "review-2",
					AuthorID:   "user-31",
					AuthorName: "Kevin L.",
					Rating:     4,
					Title:      "Great, but pricey",
					Text:       "Excellent program. Tuition is on the high side.",
					Date:       "2024-01-18",
					Likes:      6,
					Dislikes:   1,
				},
			},
		},
		{
			ID:          "preschool-2",
			Name:        "Little Explorers Learning Center",
			Description: "Play-based learning with an emphasis on outdoor exploration and science.",
			Address:     "456 University Ave",
			City:        "Palo Alto",
			State:       "CA",
			PostalCode:  "94301",
			County:      "Santa Clara",
			Latitude:    coord(37.4419),
			Longitude:   coord(-122.1430),
			Phone:       "(650) 555-0199",
			Website:     "https://littleexplorers.example.com",
			Rating:      4.5,
			ReviewCount: 86,
			Tuition:     "$1,500 - $1,900/month",
			Hours:       "8:00 AM - 5:30 PM",
			AgeRange:    "3-5 years",
			Curriculum:  "Play-based",
			Features:    []string{"Nature walks", "Science lab"},
			Images:      []string{"https://example.com/images/explorers1.jpg"},
		},
		{
			ID:          "preschool-3",
			Name:        "Bright Beginnings Reggio School",
			Description: "Reggio Emilia inspired program where children lead projects through art.",
			Address:     "789 Grand Ave",
			City:        "Oakland",
			State:       "CA",
			PostalCode:  "94610",
			County:      "Alameda",
			Latitude:    coord(37.8044),
			Longitude:   coord(-122.2712),
			Phone:       "(510) 555-0123",
			Website:     "https://brightbeginnings.example.com",
			Rating:      4.8,
			ReviewCount: 20,
			Tuition:     "$1,600 - $2,000/month",
			Hours:       "8:00 AM - 6:00 PM",
			AgeRange:    "2-5 years",
			Curriculum:  "Reggio Emilia",
			Features:    []string{"Art studio", "Small class sizes"},
			Images:      []string{"https://example.com/images/bright1.jpg"},
		},
		{
			ID:          "preschool-4",
			Name:        "Rainbow Kids Preschool",
			Description: "Friendly neighbourhood preschool with a play-based, social-emotional focus.",
			Address:     "321 Santa Clara St",
			City:        "San Jose",
			State:       "CA",
			PostalCode:  "95113",
			County:      "Santa Clara",
			Latitude:    coord(37.3382),
			Longitude:   coord(-121.8863),
			Phone:       "(408) 555-0177",
			Rating:      4.3,
			ReviewCount: 45,
			Tuition:     "$1,200 - $1,500/month",
			Hours:       "7:00 AM - 6:30 PM",
			AgeRange:    "2-4 years",
			Curriculum:  "Play-based",
			Features:    []string{"Extended hours"},
		},
		{
			ID:            "CSPP_0",
			Name:          "Mission Community State Preschool",
			Description:   "A California State Preschool Program located in San Francisco.",
			Address:       "2950 Mission St",
			City:          "San Francisco",
			State:         "CA",
			PostalCode:    "94110",
			County:        "San Francisco",
			Latitude:      coord(37.7599),
			Longitude:     coord(-122.4148),
			Phone:         "(415) 555-0110",
			Rating:        4.6,
			ReviewCount:   12,
			Tuition:       "Subsidized",
			Hours:         "Varies",
			AgeRange:      "2-5 years",
			Curriculum:    "California State Preschool Program",
			ProgramType:   "CSPP",
			LicenseNumber: "384001234",
			Capacity:      48,
			DataSource:    "CSAC",
			Features:      []string{"California State Preschool Program", "State-funded"},
		},
	}
}
