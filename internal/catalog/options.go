package catalog

// RoomUnresolvedPolicy governs what happens when a requirement's effective
// room cannot be resolved.
type RoomUnresolvedPolicy string

const (
	// RoomUnresolvedIgnore leaves the requirement's room nil; it contributes
	// to no room-exclusion constraint.
	RoomUnresolvedIgnore RoomUnresolvedPolicy = "ignore"
	// RoomUnresolvedReject treats a missing room as a LoadError.
	RoomUnresolvedReject RoomUnresolvedPolicy = "reject"
)

// Options configures catalog loading.
type Options struct {
	RoomUnresolvedPolicy RoomUnresolvedPolicy
}
