package notify

import "github.com/R0UTS/Animal-Hospitalty/internal/models"

const (
	RoomFarmers = "farmers"
	RoomVets    = "vets"
	RoomAdmins  = "admins"

	EventNewEmergency  = "newEmergencyReport"
	EventStatusUpdated = "emergencyStatusUpdated"

	// client -> server
	EventJoinRoom  = "joinRoom"
	EventLeaveRoom = "leaveRoom"
)

// Event is the JSON frame exchanged over the socket.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

type StatusUpdate struct {
	EmergencyID string `json:"emergencyId"`
	Status      string `json:"status"`
}

func KnownRoom(room string) bool {
	switch room {
	case RoomFarmers, RoomVets, RoomAdmins:
		return true
	}
	return false
}

// CanJoin reports whether a client authenticated as role may join room.
// The farmers room only carries status changes and is open to anonymous
// clients; the vets and admins rooms carry full reports.
func CanJoin(role, room string) bool {
	switch room {
	case RoomFarmers:
		return true
	case RoomVets:
		return role == "veterinarian" || role == "admin"
	case RoomAdmins:
		return role == "admin"
	}
	return false
}

// RoomForRole maps an account role to its room.
func RoomForRole(role string) string {
	switch role {
	case "farmer":
		return RoomFarmers
	case "veterinarian":
		return RoomVets
	case "admin":
		return RoomAdmins
	}
	return ""
}

func NewEmergencyReport(e *models.Emergency) Event {
	return Event{Name: EventNewEmergency, Data: e}
}

func StatusUpdated(emergencyID, status string) Event {
	return Event{Name: EventStatusUpdated, Data: StatusUpdate{EmergencyID: emergencyID, Status: status}}
}
