package emergency

import (
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
)

// ===============================
// Emergency Status
// ===============================

type Status string

const (
	StatusPending      Status = "Pending"
	StatusAcknowledged Status = "Acknowledged"
	StatusEnRoute      Status = "En Route"
	StatusOnSite       Status = "On-Site"
	StatusResolved     Status = "Resolved"
	StatusCancelled    Status = "Cancelled"
)

var statusAliases = map[string]Status{
	"pending":      StatusPending,
	"acknowledged": StatusAcknowledged,
	"acknowledge":  StatusAcknowledged,
	"en route":     StatusEnRoute,
	"enroute":      StatusEnRoute,
	"on site":      StatusOnSite,
	"onsite":       StatusOnSite,
	"resolved":     StatusResolved,
	"cancelled":    StatusCancelled,
	"canceled":     StatusCancelled,
}

// transitions is the complete set of legal moves. Anything missing here is
// rejected, including staying in the same state.
var transitions = map[Status][]Status{
	StatusPending:      {StatusAcknowledged, StatusCancelled},
	StatusAcknowledged: {StatusEnRoute},
	StatusEnRoute:      {StatusOnSite},
	StatusOnSite:       {StatusResolved},
}

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus normalizes user input ("en-route", "ON_SITE", "acknowledge")
// to the canonical label.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	key = strings.Join(strings.Fields(key), " ")

	if s, ok := statusAliases[key]; ok {
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Invalid status value")
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether moving from -> to is legal.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(
		"invalid_transition",
		"Cannot change status from "+string(from)+" to "+string(to),
	)
}
