package live

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/recera/rbgview/internal/cache"
	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/renderer/html"
	"github.com/recera/rbgview/pkg/renderer/svg"
	"github.com/recera/rbgview/pkg/vdom"
)

// Handler returns the preview routes: the page at "/", the websocket under
// the prefix, the current document as JSON and a static SVG export.
func (s *Server) Handler(title string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Prefix, s.HandleWebSocket)
	mux.HandleFunc("/document.json", s.serveDocument)
	mux.HandleFunc("/export.svg", s.serveExport)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.servePage(w, title)
	})
	return mux
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(s.Document()); err != nil {
		log.Printf("[Live Server] Failed to write document: %v", err)
	}
}

// serveExport renders the document at the default viewport. width and
// height query parameters override the configured surface size. Successful
// frames are cached until the document is replaced.
func (s *Server) serveExport(w http.ResponseWriter, r *http.Request) {
	width := queryFloat(r, "width", s.cfg.Width)
	height := queryFloat(r, "height", s.cfg.Height)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")

	s.mu.RLock()
	doc := s.doc
	key := cache.Key(strconv.FormatFloat(width, 'f', -1, 64), strconv.FormatFloat(height, 'f', -1, 64))
	frame, ok := s.exports.Get(key)
	s.mu.RUnlock()
	if ok {
		w.Write(frame)
		return
	}

	viewer := graphviewer.New(doc, s.cfg.Viewer)
	viewer.SetSize(width, height)
	surface := svg.New(width, height)
	surface.Background = s.cfg.Background
	renderErr := viewer.Draw(surface)

	markup, err := surface.Markup()
	if err != nil {
		log.Printf("[Live Server] Failed to write export: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if renderErr != nil {
		w.Header().Set("X-Render-Error", renderErr.Error())
	} else {
		s.mu.RLock()
		if s.doc == doc {
			s.exports.Put(key, []byte(markup))
		}
		s.mu.RUnlock()
	}
	w.Write([]byte(markup))
}

// ExportStats reports hit and miss counts of the export cache
func (s *Server) ExportStats() cache.Stats {
	return s.exports.GetStats()
}

func (s *Server) servePage(w http.ResponseWriter, title string) {
	page, err := html.RenderToString(Page(title, s.cfg.Prefix, s.Document().Info().Lines()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte("<!DOCTYPE html>"))
	w.Write([]byte(page))
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

// Page builds the preview page: controls, the drawing surface and the info
// panel, plus the script that talks to the session websocket.
func Page(title, prefix string, info []string) *vdom.VNode {
	infoLines := make([]*vdom.VNode, 0, len(info))
	for _, line := range info {
		infoLines = append(infoLines, vdom.NewElement("div", nil, vdom.NewText(line)))
	}

	button := func(id, label string) *vdom.VNode {
		return vdom.NewElement("button", vdom.Props{"id": id, "type": "button"}, vdom.NewText(label))
	}

	head := vdom.NewElement("head", nil,
		vdom.NewElement("meta", vdom.Props{"charset": "utf-8"}),
		vdom.NewElement("title", nil, vdom.NewText(title)),
		vdom.NewElement("style", nil, vdom.NewText(pageStyle)),
	)
	body := vdom.NewElement("body", vdom.Props{"data-live-prefix": prefix},
		vdom.NewElement("div", vdom.Props{"class": "controls"},
			button("zoom-in", "Zoom In"),
			button("zoom-out", "Zoom Out"),
			button("reset", "Reset"),
		),
		vdom.NewElement("div", vdom.Props{"id": "error", "class": "error", "hidden": true}),
		vdom.NewElement("div", vdom.Props{"id": "surface", "class": "surface"}),
		vdom.NewElement("div", vdom.Props{"id": "info", "class": "info"}, infoLines...),
		vdom.NewElement("script", nil, vdom.NewText(pageScript)),
	)
	return vdom.NewElement("html", vdom.Props{"lang": "en"}, head, body)
}

const pageStyle = `
body { margin: 0; padding: 20px; background: #1e1e1e; color: #d4d4d4; font-family: Arial, sans-serif; }
.controls { margin-bottom: 10px; }
.controls button { margin-right: 6px; padding: 4px 10px; background: #3c3c3c; color: #d4d4d4; border: 1px solid #555; cursor: pointer; }
.surface { border: 1px solid #3c3c3c; cursor: grab; user-select: none; }
.surface.dragging { cursor: grabbing; }
.info { margin-top: 10px; font-size: 12px; }
.error { color: #f48771; margin-bottom: 10px; }
`

const pageScript = `
(function () {
  var prefix = document.body.getAttribute('data-live-prefix');
  var id = sessionStorage.getItem('rbg-session');
  if (!id) {
    id = Math.random().toString(36).slice(2) + Date.now().toString(36);
    sessionStorage.setItem('rbg-session', id);
  }
  var surface = document.getElementById('surface');
  var info = document.getElementById('info');
  var error = document.getElementById('error');
  var ws;

  function send(msg) {
    if (ws && ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }
  function point(e) {
    var r = surface.getBoundingClientRect();
    return { x: e.clientX - r.left, y: e.clientY - r.top };
  }
  function resize() {
    send({ type: 'RESIZE', width: document.body.clientWidth, height: window.innerHeight });
  }

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    ws = new WebSocket(proto + location.host + prefix + id);
    ws.onopen = function () { send({ type: 'HELLO' }); resize(); };
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === 'FRAME') {
        surface.innerHTML = msg.svg;
        info.innerHTML = '';
        ['ID: ' + msg.info.id, 'Type: ' + msg.info.type, 'Nodes: ' + msg.info.nodes].forEach(function (line) {
          var div = document.createElement('div');
          div.textContent = line;
          info.appendChild(div);
        });
      } else if (msg.type === 'ERROR') {
        error.textContent = msg.message;
        error.hidden = false;
        setTimeout(function () { error.hidden = true; }, 5000);
      }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }

  surface.addEventListener('mousedown', function (e) {
    var p = point(e);
    surface.classList.add('dragging');
    send({ type: 'POINTER_DOWN', x: p.x, y: p.y });
  });
  window.addEventListener('mousemove', function (e) {
    if (!surface.classList.contains('dragging')) return;
    var p = point(e);
    send({ type: 'POINTER_MOVE', x: p.x, y: p.y });
  });
  window.addEventListener('mouseup', function () {
    if (!surface.classList.contains('dragging')) return;
    surface.classList.remove('dragging');
    send({ type: 'POINTER_UP' });
  });
  surface.addEventListener('wheel', function (e) {
    e.preventDefault();
    send({ type: 'WHEEL', deltaY: e.deltaY });
  }, { passive: false });
  document.getElementById('zoom-in').onclick = function () { send({ type: 'ZOOM_IN' }); };
  document.getElementById('zoom-out').onclick = function () { send({ type: 'ZOOM_OUT' }); };
  document.getElementById('reset').onclick = function () { send({ type: 'RESET' }); };
  window.addEventListener('resize', resize);
  window.addEventListener('beforeunload', function () { send({ type: 'CLOSE' }); });

  connect();
})();
`
