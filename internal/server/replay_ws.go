package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/replay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// The gallery and the replay view are served from the same origin; any
	// cross-origin deployment sits behind a proxy that enforces its own
	// policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// viewer is one open replay view: a websocket connection plus its session.
// Frames are written from the session's tick goroutine and from command
// handling, serialized by the write mutex.
type viewer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (v *viewer) send(f replay.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.conn.WriteJSON(f); err != nil {
		// The read pump notices the dead connection and tears the
		// session down; nothing to do here.
		return
	}
}

// handleReplay opens a replay view: it builds a fresh Session seeded with
// the recorded annotation list, pushes an initial frame, then relays
// transport commands in and frames out until the connection closes. All
// session state dies with the connection.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.Session(r.PathValue("id"))
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	img, err := s.catalog.Image(rec.Image)
	if err != nil {
		http.Error(w, "session image missing", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("replay %s: upgrade failed: %v", rec.ID, err)
		return
	}

	annotations := rec.Normalize(float64(img.Width), float64(img.Height))
	session := replay.NewSession(annotations, float64(img.Width), float64(img.Height), s.cfg.TickInterval())
	v := &viewer{conn: conn}
	session.OnFrame(v.send)

	s.openSessions.Add(1)
	defer func() {
		session.Close()
		conn.Close()
		s.openSessions.Add(-1)
	}()

	// Initial frame: transport state before the container has reported its
	// size. Ops stay empty until the first resize command arrives.
	v.send(session.Frame())

	for {
		var cmd replay.Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("replay %s: read: %v", rec.ID, err)
			}
			return
		}
		session.Apply(cmd)
	}
}
