// Package debugview streams per-turn planner state over websockets so a
// visualizer client can watch the network evolve during development.
package debugview

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/signalsfoundry/transit-planner/core"
	"github.com/signalsfoundry/transit-planner/internal/logging"
)

// Snapshot is the JSON document pushed to connected viewers after each turn.
type Snapshot struct {
	Turn     int           `json:"turn"`
	Budget   int           `json:"budget"`
	Actions  []string      `json:"actions"`
	Stations []StationView `json:"stations"`
	Links    []LinkView    `json:"links"`
	Traffic  []TrafficView `json:"traffic"`
}

// StationView is one station in a snapshot.
type StationView struct {
	ID      int     `json:"id"`
	Type    int     `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Waiting int     `json:"waiting"`
}

// LinkView is one link in a snapshot.
type LinkView struct {
	A        int  `json:"a"`
	B        int  `json:"b"`
	Capacity int  `json:"capacity"`
	Teleport bool `json:"teleport"`
}

// TrafficView is the estimated passenger load attributed to one link.
type TrafficView struct {
	A    int `json:"a"`
	B    int `json:"b"`
	Load int `json:"load"`
}

// BuildSnapshot captures the network state after a planned turn.
func BuildSnapshot(turn, budget int, net *core.Network, actionLines []string) Snapshot {
	s := Snapshot{
		Turn:    turn,
		Budget:  budget,
		Actions: actionLines,
	}

	for _, id := range net.StationIDs() {
		st := net.Station(id)
		if st == nil {
			continue
		}
		s.Stations = append(s.Stations, StationView{
			ID:      st.ID,
			Type:    int(st.Type),
			X:       st.Pos.X,
			Y:       st.Pos.Y,
			Waiting: st.TotalWaiting(),
		})
	}

	for _, l := range net.Links() {
		s.Links = append(s.Links, LinkView{A: l.A, B: l.B, Capacity: l.Capacity, Teleport: l.Teleport})
	}

	for key, load := range net.EdgeTraffic() {
		s.Traffic = append(s.Traffic, TrafficView{A: key.A, B: key.B, Load: load})
	}

	return s
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to every connected viewer. Slow clients are
// dropped rather than allowed to stall the planner.
type Hub struct {
	log        logging.Logger
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
}

// NewHub returns an idle hub; call Run to start it.
func NewHub(log logging.Logger) *Hub {
	if log == nil {
		log = logging.Noop()
	}
	return &Hub{
		log:        log,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run processes registrations and broadcasts until the context is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues a snapshot for all viewers. It never blocks planning: if
// the queue is full the snapshot is dropped.
func (h *Hub) Broadcast(ctx context.Context, s Snapshot) {
	msg, err := json.Marshal(s)
	if err != nil {
		h.log.Warn(ctx, "failed to marshal snapshot", logging.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Debug(ctx, "snapshot dropped; broadcast queue full")
	}
}

// ServeWS upgrades an HTTP request to a websocket viewer connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "websocket upgrade failed", logging.String("error", err.Error()))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump(h)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; viewers are listen-only. It exists to
// notice disconnects.
func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
