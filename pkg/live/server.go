package live

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/recera/rbgview/internal/cache"
	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/rbg"
	"github.com/recera/rbgview/pkg/renderer/svg"
)

// debugLog is set by the host when debug logging is enabled
var debugLog func(args ...any)

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...any)) {
	debugLog = fn
}

// Config configures a Server
type Config struct {
	// Prefix is the websocket path prefix; the session id follows it.
	// Default "/live/".
	Prefix string
	// Viewer options for every session
	Viewer *graphviewer.Options
	// Background fills each frame, if set
	Background string
	// Surface size used until the client sends RESIZE. Default 800x480.
	Width  float64
	Height float64

	PingInterval time.Duration // default 54s
	WriteTimeout time.Duration // default 10s
	ReadTimeout  time.Duration // default 5m
	SendBuffer   int           // default 256 messages
}

func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = "/live/"
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 54 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 300 * time.Second
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 256
	}
	return c
}

// Server owns the current document and one Session per connected preview
type Server struct {
	upgrader websocket.Upgrader
	cfg      Config

	mu       sync.RWMutex
	doc      *rbg.Document
	sessions map[string]*Session

	// exports holds rendered /export.svg frames of the current document
	exports *cache.Cache
}

// NewServer creates a live preview server showing doc
func NewServer(doc *rbg.Document, cfg Config) *Server {
	if doc == nil {
		doc = &rbg.Document{Nodes: []rbg.Node{}}
	}
	return &Server{
		upgrader: websocket.Upgrader{
			// the preview only listens on the host the user picked
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		cfg:      cfg.withDefaults(),
		doc:      doc,
		sessions: make(map[string]*Session),
		exports:  cache.New(cache.DefaultConfig()),
	}
}

// Document returns the document new sessions start with
func (s *Server) Document() *rbg.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Config returns the effective configuration
func (s *Server) Config() Config { return s.cfg }

// HandleWebSocket upgrades the request and attaches it to the session named
// by the path after the prefix. A client reconnecting with an id that is
// still open takes over that session and keeps its viewport.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, s.cfg.Prefix)
	if sessionID == "" || sessionID == r.URL.Path || strings.Contains(sessionID, "/") {
		http.Error(w, "Session ID required", http.StatusBadRequest)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live Server] Failed to upgrade connection: %v", err)
		return
	}

	c := newConnection(ws, s.cfg.SendBuffer)
	session, resumed := s.attach(sessionID, c)
	if resumed {
		log.Printf("[Live Session %s] Client reconnected", sessionID)
	} else {
		log.Printf("[Live Session %s] Session opened", sessionID)
	}

	go c.writer(sessionID, s.cfg.PingInterval, s.cfg.WriteTimeout)
	go session.serve(c)
}

// attach binds c to the session with the given id, creating it on first
// use. Any connection the session had before is closed.
func (s *Server) attach(id string, c *connection) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.connMu.Lock()
		old := session.conn
		session.conn = c
		session.connMu.Unlock()
		if old != nil {
			old.finish()
		}
		return session, true
	}

	session := newSession(id, s, s.doc)
	session.conn = c
	s.sessions[id] = session
	return session, false
}

// detach removes the session when c is still its connection. A session
// that was taken over by a reconnect stays.
func (s *Server) detach(session *Session, c *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.connMu.Lock()
	current := session.conn == c
	if current {
		session.conn = nil
	}
	session.connMu.Unlock()

	if current && s.sessions[session.ID] == session {
		delete(s.sessions, session.ID)
		log.Printf("[Live Session %s] Session closed", session.ID)
	}
}

// GetSession retrieves a session by ID
func (s *Server) GetSession(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// SessionCount returns the number of open sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) snapshot() []*Session {
	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

// ReplaceDocument swaps the document in every session and pushes a fresh
// frame. Viewports and drags in progress are kept.
func (s *Server) ReplaceDocument(doc *rbg.Document) {
	if doc == nil {
		doc = &rbg.Document{Nodes: []rbg.Node{}}
	}
	s.mu.Lock()
	s.doc = doc
	sessions := s.snapshot()
	s.exports.Clear()
	s.mu.Unlock()

	for _, session := range sessions {
		session.replaceDocument(doc)
	}
	if debugLog != nil {
		debugLog("[Live Server] document replaced in", len(sessions), "sessions")
	}
}

// ReportError pushes an ERROR message to every session. What the sessions
// show is left untouched.
func (s *Server) ReportError(message string) {
	s.mu.RLock()
	sessions := s.snapshot()
	s.mu.RUnlock()

	for _, session := range sessions {
		session.mu.Lock()
		session.sendLocked(ServerMessage{Type: MsgError, Message: message})
		session.mu.Unlock()
	}
}

// Close disconnects every session
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.snapshot()
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		session.connMu.Lock()
		c := session.conn
		session.conn = nil
		session.connMu.Unlock()
		if c != nil {
			c.finish()
		}
	}
}

// Session is one preview panel. Messages are handled one at a time in
// arrival order; document reloads take the same lock.
type Session struct {
	ID     string
	server *Server

	mu      sync.Mutex
	viewer  *graphviewer.Viewer
	surface *svg.Surface
	seq     uint64

	connMu sync.Mutex
	conn   *connection
}

func newSession(id string, server *Server, doc *rbg.Document) *Session {
	cfg := server.cfg
	viewer := graphviewer.New(doc, cfg.Viewer)
	viewer.SetSize(cfg.Width, cfg.Height)
	surface := svg.New(cfg.Width, cfg.Height)
	surface.Background = cfg.Background
	surface.Class = "rbg-surface"
	return &Session{
		ID:      id,
		server:  server,
		viewer:  viewer,
		surface: surface,
	}
}

// Viewport returns the session's current viewport
func (s *Session) Viewport() graphviewer.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.Viewport()
}

// Info returns the summary of the document the session shows
func (s *Session) Info() rbg.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.Info()
}

// serve runs the read loop for one connection
func (s *Session) serve(c *connection) {
	defer func() {
		c.finish()
		s.server.detach(s, c)
	}()

	c.ws.SetReadDeadline(time.Now().Add(s.server.cfg.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(s.server.cfg.ReadTimeout))
		return nil
	})

	s.mu.Lock()
	s.frameLocked()
	s.mu.Unlock()

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Live Session %s] Unexpected close: %v", s.ID, err)
			} else if debugLog != nil {
				debugLog("[Live Session", s.ID+"]", "read ended:", err.Error())
			}
			return
		}
		if messageType != websocket.TextMessage {
			if debugLog != nil {
				debugLog("[Live Session", s.ID+"]", "ignoring non-text frame")
			}
			continue
		}
		if !s.handleMessage(data) {
			return
		}
	}
}

// handleMessage applies one client message. It returns false when the
// client asked to close the session.
func (s *Session) handleMessage(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := DecodeClientMessage(data)
	if err != nil {
		log.Printf("[Live Session %s] %v", s.ID, err)
		s.sendLocked(ServerMessage{Type: MsgError, Message: err.Error()})
		return true
	}
	if debugLog != nil {
		debugLog("[Live Session", s.ID+"]", "received", string(msg.Type))
	}

	switch msg.Type {
	case MsgClose:
		s.sendLocked(ServerMessage{Type: MsgAck})
		return false
	case MsgHello:
		s.frameLocked()
		return true
	}

	ev, _, err := msg.Event()
	if err != nil {
		s.sendLocked(ServerMessage{Type: MsgError, Message: err.Error()})
		return true
	}
	if s.viewer.Handle(ev) {
		s.frameLocked()
	} else {
		s.sendLocked(ServerMessage{Type: MsgAck})
	}
	return true
}

func (s *Session) replaceDocument(doc *rbg.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer.SetDocument(doc)
	s.frameLocked()
}

// frameLocked renders the viewer and sends the result. A failed render
// still sends a frame, showing the fallback panel, with the error attached.
func (s *Session) frameLocked() {
	if w, h := s.viewer.Size(); w > 0 && h > 0 {
		s.surface.Resize(w, h)
	}

	msg := ServerMessage{Type: MsgFrame}
	if err := s.viewer.Draw(s.surface); err != nil {
		log.Printf("[Live Session %s] Render failed: %v", s.ID, err)
		msg.Message = err.Error()
	}
	markup, err := s.surface.Markup()
	if err != nil {
		s.sendLocked(ServerMessage{Type: MsgError, Message: err.Error()})
		return
	}
	info := s.viewer.Info()
	vp := s.viewer.Viewport()
	msg.SVG = markup
	msg.Info = &info
	msg.Viewport = &vp
	s.sendLocked(msg)
}

// sendLocked stamps msg with the next sequence number and queues it
func (s *Session) sendLocked(msg ServerMessage) {
	s.seq++
	msg.Seq = s.seq

	data, err := EncodeServerMessage(msg)
	if err != nil {
		log.Printf("[Live Session %s] %v", s.ID, err)
		return
	}

	s.connMu.Lock()
	c := s.conn
	s.connMu.Unlock()
	if c == nil || !c.enqueue(data) {
		log.Printf("[Live Session %s] Send buffer full or closed, dropping %s", s.ID, msg.Type)
	}
}

// connection is one websocket attached to a session. The writer goroutine
// owns all writes; everyone else queues through enqueue.
type connection struct {
	ws *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newConnection(ws *websocket.Conn, buffer int) *connection {
	return &connection{ws: ws, send: make(chan []byte, buffer)}
}

func (c *connection) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// finish stops accepting messages. The writer flushes what is queued, sends
// a close frame and closes the socket.
func (c *connection) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writer handles writing messages to the WebSocket
func (c *connection) writer(sessionID string, ping, timeout time.Duration) {
	ticker := time.NewTicker(ping)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(timeout))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[Live Session %s] Failed to write message: %v", sessionID, err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(timeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
