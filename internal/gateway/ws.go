package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/printdesk/printdesk/internal/domain"
)

// Frame types for the WebSocket protocol.
const (
	FrameChatSend  = "chat.send"
	FrameChatReply = "chat.reply"
	FrameError     = "error"
)

// Frame is the envelope for all WebSocket messages. ID echoes back so
// clients can correlate replies with sends.
type Frame struct {
	Type     string               `json:"type"`
	ID       string               `json:"id,omitempty"`
	Request  *domain.TurnRequest  `json:"request,omitempty"`
	Response *domain.TurnResponse `json:"response,omitempty"`
	Error    string               `json:"error,omitempty"`
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// handleWebSocket upgrades the connection and serves chat frames until the
// client disconnects. Frames are processed one at a time per connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if res := Authorize(s.auth, bearerToken(r)); !res.OK {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": res.Reason})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("websocket client connected")

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// Serializes reply and ping writes; gorilla allows one writer at a time.
	var writeMu sync.Mutex
	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, &writeMu, done)

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		reply := s.handleFrame(r, frame)

		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		err := conn.WriteJSON(reply)
		writeMu.Unlock()
		if err != nil {
			s.log.Warn().Err(err).Msg("websocket write error")
			return
		}
	}
}

func (s *Server) handleFrame(r *http.Request, frame Frame) Frame {
	switch frame.Type {
	case FrameChatSend:
		if frame.Request == nil {
			return Frame{Type: FrameError, ID: frame.ID, Error: "chat.send requires a request"}
		}
		resp := s.turns.Turn(r.Context(), *frame.Request)
		return Frame{Type: FrameChatReply, ID: frame.ID, Response: &resp}
	default:
		return Frame{Type: FrameError, ID: frame.ID, Error: "unknown frame type: " + frame.Type}
	}
}

func (s *Server) pingLoop(conn *websocket.Conn, writeMu *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
