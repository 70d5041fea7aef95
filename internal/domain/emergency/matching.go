package emergency

import (
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

// LocationMatches is the one vet/farmer location rule: the vet's work
// location must contain the farmer's location, ignoring case. An empty
// farmer location matches nobody.
//
// Substring semantics are kept as-is, so a farmer in "PURI" also matches a
// vet working in "GOPALPURI".
func LocationMatches(vetLocation, farmerLocation string) bool {
	farmer := strings.ToLower(strings.TrimSpace(farmerLocation))
	if farmer == "" {
		return false
	}
	return strings.Contains(strings.ToLower(vetLocation), farmer)
}

// EligibleVeterinarians filters vets that may respond to a report filed from
// farmerLocation.
func EligibleVeterinarians(vets []models.User, farmerLocation string) []models.User {
	out := make([]models.User, 0, len(vets))
	for _, v := range vets {
		if LocationMatches(v.VetLocation, farmerLocation) {
			out = append(out, v)
		}
	}
	return out
}

// VisibleLocations returns the farmer locations a vet working at vetLocation
// is allowed to see.
func VisibleLocations(vetLocation string, farmerLocations []string) []string {
	out := make([]string, 0, len(farmerLocations))
	for _, loc := range farmerLocations {
		if LocationMatches(vetLocation, loc) {
			out = append(out, loc)
		}
	}
	return out
}

// IsMatchedVet reports whether vet is one of the responders for e.
func IsMatchedVet(vet *models.User, e *models.Emergency) bool {
	return vet != nil && LocationMatches(vet.VetLocation, e.FarmerLocation)
}
