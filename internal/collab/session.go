package collab

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/store"
)

// State is the session connection state. Mutation methods are gated on
// Joined: nothing may be sent before the join_collection acknowledgment
// (the collection_data baseline) has arrived.
type State int

const (
	Disconnected State = iota
	Connecting
	Joined
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Joined:
		return "joined"
	default:
		return "disconnected"
	}
}

const (
	baseReconnectDelay   = time.Second
	maxReconnectDelay    = 30 * time.Second
	maxReconnectAttempts = 5

	// Time allowed for the server to answer join_collection with the
	// collection_data baseline
	joinTimeout = 10 * time.Second
)

// BackoffDelay returns the delay before reconnect attempt (0-based):
// min(1000 · 2^attempt, 30000) ms.
func BackoffDelay(attempt int) time.Duration {
	if attempt >= 5 {
		return maxReconnectDelay
	}
	d := baseReconnectDelay << uint(attempt)
	if d > maxReconnectDelay {
		d = maxReconnectDelay
	}
	return d
}

// SessionHandlers are the callbacks a session surfaces events through.
// All are optional. They are invoked from the session's read goroutine.
type SessionHandlers struct {
	// OnUsers receives the member list on every join/leave
	OnUsers func(users []models.CollaborationParticipant)

	// OnRemoteMutation fires after a remote mutation has been applied
	// to the local mirror
	OnRemoteMutation func(msg Message)

	// OnServerError receives error replies; the connection stays open
	OnServerError func(message string)

	// OnConnectionFailed fires once the reconnect budget is exhausted.
	// The session is terminal at that point; the user must retry
	// manually (e.g. reload).
	OnConnectionFailed func(err error)
}

// Session connects one participant to the hub for one collection,
// mirrors the collection locally, applies remote mutations, and
// reconnects with exponential backoff on transport failure. Reconnect
// counters are session-scoped so multiple sessions can coexist in one
// process.
type Session struct {
	url          string
	collectionID string
	userID       string
	username     string
	handlers     SessionHandlers

	dialer *websocket.Dialer
	sleep  func(time.Duration)

	mu     sync.Mutex
	state  State
	conn   *websocket.Conn
	mirror *store.LandmarkStore
	closed bool
}

// NewSession creates a session for one (participant, collection) pair.
// url is the ws:// endpoint of the hub.
func NewSession(url, collectionID, userID, username string, handlers SessionHandlers) *Session {
	return &Session{
		url:          url,
		collectionID: collectionID,
		userID:       userID,
		username:     username,
		handlers:     handlers,
		dialer:       websocket.DefaultDialer,
		sleep:        time.Sleep,
	}
}

// State returns the current connection state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mirror returns the local landmark mirror, or nil before the first
// successful join
func (s *Session) Mirror() *store.LandmarkStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mirror
}

// Connect dials the hub and joins the collection. It returns once the
// collection_data baseline has been received and the session is Joined.
func (s *Session) Connect() error {
	s.mu.Lock()
	if s.state != Disconnected || s.closed {
		s.mu.Unlock()
		return fmt.Errorf("connect from state %s", s.state)
	}
	s.state = Connecting
	s.mu.Unlock()

	if err := s.dial(); err != nil {
		s.mu.Lock()
		s.state = Disconnected
		s.mu.Unlock()
		return err
	}
	return nil
}

// dial opens a connection, joins, and waits for the authoritative
// baseline before declaring the session Joined.
func (s *Session) dial() error {
	conn, _, err := s.dialer.Dial(s.url, nil)
	if err != nil {
		return err
	}

	join := Message{
		Type:         TypeJoinCollection,
		CollectionID: s.collectionID,
		UserID:       s.userID,
		Username:     s.username,
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return err
	}

	conn.SetReadDeadline(time.Now().Add(joinTimeout))
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			conn.Close()
			return fmt.Errorf("awaiting collection_data: %w", err)
		}

		switch msg.Type {
		case TypeCollectionData:
			if msg.Collection == nil {
				conn.Close()
				return fmt.Errorf("collection_data without collection payload")
			}
			conn.SetReadDeadline(time.Time{})

			s.mu.Lock()
			s.conn = conn
			s.mirror = store.New(*msg.Collection)
			s.state = Joined
			s.mu.Unlock()

			go s.readLoop(conn)
			return nil

		case TypeError:
			conn.Close()
			return fmt.Errorf("join rejected: %s", msg.Message)

		case TypeUsersInCollection:
			if s.handlers.OnUsers != nil {
				s.handlers.OnUsers(msg.Users)
			}
		}
	}
}

// AddLandmark adds a landmark locally and announces it to the hub
func (s *Session) AddLandmark(lm models.Landmark) error {
	return s.sendMutation(
		Message{Type: TypeAddLandmark, CollectionID: s.collectionID, UserID: s.userID, Username: s.username, Landmark: &lm},
		func(m *store.LandmarkStore) { m.Add(lm, s.userID) },
	)
}

// UpdateLandmark replaces a landmark locally and announces it to the hub
func (s *Session) UpdateLandmark(lm models.Landmark) error {
	return s.sendMutation(
		Message{Type: TypeUpdateLandmark, CollectionID: s.collectionID, UserID: s.userID, Username: s.username, Landmark: &lm},
		func(m *store.LandmarkStore) { m.Update(lm, s.userID) },
	)
}

// RemoveLandmark removes a landmark locally and announces it to the hub
func (s *Session) RemoveLandmark(landmarkID string) error {
	return s.sendMutation(
		Message{Type: TypeRemoveLandmark, CollectionID: s.collectionID, UserID: s.userID, Username: s.username, LandmarkID: landmarkID},
		func(m *store.LandmarkStore) { m.Remove(landmarkID, s.userID) },
	)
}

// sendMutation applies a mutation to the local mirror and sends it,
// rejecting it locally unless the session is Joined.
func (s *Session) sendMutation(msg Message, local func(*store.LandmarkStore)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Joined {
		return &ProtocolViolationError{Reason: "mutation before join_collection completed"}
	}

	local(s.mirror)

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

// readLoop applies inbound messages until the transport fails, then
// hands off to the reconnect path. Malformed frames are logged and
// dropped without closing the connection.
func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.reconnect(conn)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[collab] dropping malformed message: %v", err)
			continue
		}

		s.apply(msg)
	}
}

// apply folds one inbound message into the session
func (s *Session) apply(msg Message) {
	switch msg.Type {
	case TypeAddLandmark:
		if msg.Landmark != nil {
			s.Mirror().Add(*msg.Landmark, msg.UserID)
			s.notifyRemote(msg)
		}
	case TypeUpdateLandmark:
		if msg.Landmark != nil {
			s.Mirror().Update(*msg.Landmark, msg.UserID)
			s.notifyRemote(msg)
		}
	case TypeRemoveLandmark:
		if msg.LandmarkID != "" {
			s.Mirror().Remove(msg.LandmarkID, msg.UserID)
			s.notifyRemote(msg)
		}
	case TypeUsersInCollection:
		if s.handlers.OnUsers != nil {
			s.handlers.OnUsers(msg.Users)
		}
	case TypeCollectionData:
		// Late baseline replaces the mirror wholesale
		if msg.Collection != nil {
			s.mu.Lock()
			s.mirror = store.New(*msg.Collection)
			s.mu.Unlock()
		}
	case TypeError:
		if s.handlers.OnServerError != nil {
			s.handlers.OnServerError(msg.Message)
		}
	}
}

func (s *Session) notifyRemote(msg Message) {
	if s.handlers.OnRemoteMutation != nil {
		s.handlers.OnRemoteMutation(msg)
	}
}

// reconnect retries the connection with exponential backoff. After the
// attempt budget is exhausted the session becomes terminally
// Disconnected and OnConnectionFailed fires; there is no further
// automatic retry.
func (s *Session) reconnect(failed *websocket.Conn) {
	s.mu.Lock()
	if s.closed || s.conn != failed {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	s.state = Connecting
	s.mu.Unlock()
	failed.Close()

	for attempt := 0; attempt < maxReconnectAttempts; attempt++ {
		s.sleep(BackoffDelay(attempt))

		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}

		if err := s.dial(); err != nil {
			log.Printf("[collab] reconnect attempt %d/%d failed: %v", attempt+1, maxReconnectAttempts, err)
			continue
		}
		return
	}

	s.mu.Lock()
	s.state = Disconnected
	s.mu.Unlock()

	if s.handlers.OnConnectionFailed != nil {
		s.handlers.OnConnectionFailed(fmt.Errorf("connection failed after %d reconnect attempts", maxReconnectAttempts))
	}
}

// Close leaves the collection and tears the session down. A closed
// session does not reconnect.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.state = Disconnected
	s.mu.Unlock()

	if conn != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteJSON(Message{Type: TypeLeaveCollection, CollectionID: s.collectionID, UserID: s.userID})
		conn.Close()
	}
	return nil
}
