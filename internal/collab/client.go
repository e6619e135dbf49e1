package collab

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cephaloview/ceph-backend-go/internal/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size in bytes
	maxMessageSize = 64 * 1024

	// Outbound queue per connection; slow consumers are dropped
	sendQueueSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The UI is served from a different origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one WebSocket connection attached to the hub. Join state
// (joined, collectionID, participant) is owned by the hub goroutine and
// must not be touched from the pumps.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	joined       bool
	collectionID string
	participant  models.CollaborationParticipant
}

// ServeWS upgrades an HTTP request into a hub connection
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[collab] upgrade failed: %v", err)
		return
	}

	c := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendQueueSize),
	}
	hub.register <- c

	go c.writePump()
	go c.readPump()
}

// trySend queues a message for the client, dropping it if the client's
// queue is full (a stalled consumer must not stall the hub loop).
// Called only from the hub goroutine.
func (c *Client) trySend(msg Message) {
	select {
	case c.send <- msg:
	default:
		log.Printf("[collab] dropping message to slow client %s", c.participant.ID)
	}
}

// readPump reads frames off the wire and forwards them to the hub.
// Malformed JSON is logged and dropped without closing the connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[collab] read error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[collab] dropping malformed message: %v", err)
			continue
		}

		c.hub.inbound <- inbound{client: c, msg: msg}
	}
}

// writePump writes queued messages to the wire and keeps the connection
// alive with pings. Exits when the hub closes the send channel.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
