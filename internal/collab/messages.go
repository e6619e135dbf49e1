// Package collab implements the collaborative landmark synchronization
// protocol: a hub relaying mutations among the participants of one
// collection, and the client session that mirrors it.
package collab

import (
	"fmt"

	"github.com/cephaloview/ceph-backend-go/internal/models"
)

// Wire message types. Unrecognized types are ignored on receipt.
const (
	// Client → server
	TypeJoinCollection  = "join_collection"
	TypeLeaveCollection = "leave_collection"
	TypeAddLandmark     = "add_landmark"
	TypeUpdateLandmark  = "update_landmark"
	TypeRemoveLandmark  = "remove_landmark"

	// Server → client
	TypeUsersInCollection = "users_in_collection"
	TypeCollectionData    = "collection_data"
	TypeError             = "error"
)

// Message is the flat JSON frame exchanged over the WebSocket.
// Type is mandatory; the other fields are populated per type.
// Mutation types (add/update/remove_landmark) travel in both directions:
// the server rebroadcasts them verbatim to the other members.
type Message struct {
	Type         string                            `json:"type"`
	CollectionID string                            `json:"collectionId,omitempty"`
	UserID       string                            `json:"userId,omitempty"`
	Username     string                            `json:"username,omitempty"`
	Landmark     *models.Landmark                  `json:"landmark,omitempty"`
	LandmarkID   string                            `json:"landmarkId,omitempty"`
	Users        []models.CollaborationParticipant `json:"users,omitempty"`
	Collection   *models.LandmarksCollection       `json:"collection,omitempty"`
	Message      string                            `json:"message,omitempty"`
}

// ProtocolViolationError indicates a message the protocol state does not
// allow: a mutation before join_collection completed, or one referencing
// a collection the sender never joined. Surfaced as an error reply; the
// connection stays open.
type ProtocolViolationError struct {
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("protocol violation: %s", e.Reason)
}
