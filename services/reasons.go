package services

import (
	"strings"

	"preschool-finder/models"
)

const (
	// StateProgramType is the program-type tag of California State
	// Preschool Program sites.
	StateProgramType = "CSPP"
	// StateProgramIDPrefix prefixes ids assigned to state program records.
	StateProgramIDPrefix = "CSPP_"

	reasonTopRated     = "Top-rated preschool"
	reasonHighlyRated  = "Highly rated by parents"
	reasonPopular      = "Popular with many positive reviews"
	reasonStateProgram = "California State Preschool Program"
	reasonFallback     = "Matches your preferences"
)

// IsStateProgram reports whether r belongs to the state preschool program.
func IsStateProgram(r *models.FacilityRecord) bool {
	return r.ProgramType == StateProgramType || strings.HasPrefix(r.ID, StateProgramIDPrefix)
}

// MatchReasonGenerator explains why a record was recommended.
type MatchReasonGenerator struct{}

func NewMatchReasonGenerator() *MatchReasonGenerator {
	return &MatchReasonGenerator{}
}

// Reasons evaluates the rules in fixed priority order. Several may fire;
// when none does the fallback reason is returned alone.
func (g *MatchReasonGenerator) Reasons(r *models.FacilityRecord, prefs models.RecommendRequest) []string {
	var reasons []string

	switch {
	case r.Rating >= 4.5:
		reasons = append(reasons, reasonTopRated)
	case r.Rating >= 4.0:
		reasons = append(reasons, reasonHighlyRated)
	}

	want := lower(prefs.Curriculum)
	if want != "" && strings.Contains(strings.ToLower(r.Curriculum), want) {
		reasons = append(reasons, "Offers "+r.Curriculum+" curriculum")
	}

	if r.ReviewCount > 50 {
		reasons = append(reasons, reasonPopular)
	}

	if IsStateProgram(r) {
		reasons = append(reasons, reasonStateProgram)
	}

	if len(r.Features) > 0 {
		reasons = append(reasons, "Offers "+r.Features[0])
	}

	if len(reasons) == 0 {
		reasons = append(reasons, reasonFallback)
	}
	return reasons
}
