package collab

import (
	"log"
	"math"
	"time"

	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/store"
)

// CollectionLoader supplies the initial authoritative collection for a
// collection ID the hub has not seen yet, e.g. from persisted seed data.
type CollectionLoader func(collectionID string) models.LandmarksCollection

// Hub relays landmark mutations among the participants of each
// collection and holds the single authoritative copy of every open
// collection. All state is owned by the Run goroutine and reached only
// through channels, so mutations are serialized by arrival order with
// no locking. The merge policy is last-write-wins.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
	quit       chan struct{}

	loader CollectionLoader

	// Run-goroutine state
	clients     map[*Client]bool
	collections map[string]*collectionState
}

type inbound struct {
	client *Client
	msg    Message
}

type collectionState struct {
	store   *store.LandmarkStore
	members map[*Client]models.CollaborationParticipant
}

// NewHub creates a hub. loader may be nil, in which case unknown
// collections start empty.
func NewHub(loader CollectionLoader) *Hub {
	if loader == nil {
		loader = func(collectionID string) models.LandmarksCollection {
			now := time.Now().UnixMilli()
			return models.LandmarksCollection{
				ID:        collectionID,
				CreatedAt: now,
				UpdatedAt: now,
			}
		}
	}
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbound:     make(chan inbound, 64),
		quit:        make(chan struct{}),
		loader:      loader,
		clients:     make(map[*Client]bool),
		collections: make(map[string]*collectionState),
	}
}

// Run processes hub events until Stop is called. It must run in exactly
// one goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			// Collection membership begins at join_collection, not here
			h.clients[c] = true

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				h.leave(c)
				close(c.send)
			}

		case in := <-h.inbound:
			h.dispatch(in.client, in.msg)

		case <-h.quit:
			return
		}
	}
}

// Stop terminates the Run loop
func (h *Hub) Stop() {
	close(h.quit)
}

// dispatch handles one inbound client message
func (h *Hub) dispatch(c *Client, msg Message) {
	switch msg.Type {
	case TypeJoinCollection:
		h.join(c, msg)
	case TypeLeaveCollection:
		h.leave(c)
	case TypeAddLandmark, TypeUpdateLandmark, TypeRemoveLandmark:
		h.mutate(c, msg)
	default:
		// Unrecognized types are ignored per protocol
		log.Printf("[collab] ignoring message type %q", msg.Type)
	}
}

// join adds the client to a collection's membership, sends it the
// authoritative snapshot, and announces the new member list. A client
// already in another collection leaves it first; one connection serves
// one collection at a time.
func (h *Hub) join(c *Client, msg Message) {
	if msg.CollectionID == "" || msg.UserID == "" {
		h.replyError(c, &ProtocolViolationError{Reason: "join_collection requires collectionId and userId"})
		return
	}

	if c.joined {
		h.leave(c)
	}

	cs, ok := h.collections[msg.CollectionID]
	if !ok {
		cs = &collectionState{
			store:   store.New(h.loader(msg.CollectionID)),
			members: make(map[*Client]models.CollaborationParticipant),
		}
		h.collections[msg.CollectionID] = cs
	}

	c.joined = true
	c.collectionID = msg.CollectionID
	c.participant = models.CollaborationParticipant{ID: msg.UserID, Username: msg.Username}
	cs.members[c] = c.participant

	// Authoritative baseline goes to the joining client only, before the
	// membership announcement it will also receive
	snapshot := cs.store.Snapshot()
	c.trySend(Message{Type: TypeCollectionData, CollectionID: msg.CollectionID, Collection: &snapshot})

	h.broadcastUsers(msg.CollectionID, cs)
}

// leave removes the client from its collection, announcing the new
// member list to the remaining participants. Safe to call for clients
// that never joined.
func (h *Hub) leave(c *Client) {
	if !c.joined {
		return
	}

	collectionID := c.collectionID
	c.joined = false
	c.collectionID = ""

	cs, ok := h.collections[collectionID]
	if !ok {
		return
	}
	delete(cs.members, c)

	// Collection state is kept when the last member leaves so a rejoin
	// sees the same landmarks
	h.broadcastUsers(collectionID, cs)
}

// mutate validates a landmark mutation, applies it to the authoritative
// copy, and rebroadcasts it verbatim to every other member.
func (h *Hub) mutate(c *Client, msg Message) {
	if !c.joined {
		h.replyError(c, &ProtocolViolationError{Reason: "mutation before join_collection completed"})
		return
	}
	if msg.CollectionID != c.collectionID {
		h.replyError(c, &ProtocolViolationError{Reason: "mutation references a collection the sender has not joined"})
		return
	}

	cs := h.collections[c.collectionID]

	switch msg.Type {
	case TypeAddLandmark, TypeUpdateLandmark:
		if msg.Landmark == nil || msg.Landmark.ID == "" {
			h.replyError(c, &ProtocolViolationError{Reason: msg.Type + " requires a landmark with an id"})
			return
		}
		if !finite(msg.Landmark.X) || !finite(msg.Landmark.Y) {
			h.replyError(c, &ProtocolViolationError{Reason: "landmark coordinates must be finite"})
			return
		}
		if msg.Type == TypeAddLandmark {
			cs.store.Add(*msg.Landmark, msg.UserID)
		} else {
			cs.store.Update(*msg.Landmark, msg.UserID)
		}

	case TypeRemoveLandmark:
		if msg.LandmarkID == "" {
			h.replyError(c, &ProtocolViolationError{Reason: "remove_landmark requires landmarkId"})
			return
		}
		cs.store.Remove(msg.LandmarkID, msg.UserID)
	}

	// Never echoed back to the originating sender
	for member := range cs.members {
		if member == c {
			continue
		}
		member.trySend(msg)
	}
}

// broadcastUsers sends the current member list to every member
func (h *Hub) broadcastUsers(collectionID string, cs *collectionState) {
	users := make([]models.CollaborationParticipant, 0, len(cs.members))
	for _, p := range cs.members {
		users = append(users, p)
	}

	msg := Message{Type: TypeUsersInCollection, CollectionID: collectionID, Users: users}
	for member := range cs.members {
		member.trySend(msg)
	}
}

// replyError surfaces a validation failure to the sender without
// closing the connection
func (h *Hub) replyError(c *Client, err error) {
	log.Printf("[collab] %v", err)
	c.trySend(Message{Type: TypeError, Message: err.Error()})
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
