package user

import (
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
)

type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleFarmer, RoleVeterinarian, RoleAdmin:
		return r, nil
	}
	return "", httperr.ErrValidation("invalid_role", "Role must be farmer, veterinarian or admin")
}

// ===============================
// Account status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusSuspended Status = "Suspended"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusActive, StatusSuspended:
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Invalid status value")
}

// InitialStatus: veterinarians wait for an admin, everyone else is active.
func InitialStatus(r Role) Status {
	if r == RoleVeterinarian {
		return StatusPending
	}
	return StatusActive
}

// ===============================
// Support document status
// ===============================

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "Pending"
	DocumentApproved DocumentStatus = "Approved"
	DocumentRejected DocumentStatus = "Rejected"
)

func ParseDocumentStatus(raw string) (DocumentStatus, error) {
	switch s := DocumentStatus(raw); s {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_document_status", "Invalid supportDocumentStatus value")
}
