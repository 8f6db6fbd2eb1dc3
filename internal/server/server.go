// Package server hosts the pages over a websocket. Each connection is
// served by its own goroutine and renders its requests in order.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/vipor/internal/config"
	"github.com/san-kum/vipor/internal/pages"
)

// Message is both the request and the reply on /ws.
//
// Requests: {type: "controls", page}, {type: "render", page, values} and
// {type: "save", page, values}. Replies: "controls", "rendered", "saved" and
// "error".
type Message struct {
	Type     string          `json:"type"`
	Page     string          `json:"page,omitempty"`
	Values   pages.Values    `json:"values,omitempty"`
	Content  string          `json:"content,omitempty"`
	Controls []pages.Control `json:"controls,omitempty"`
	Blocks   []BlockView     `json:"blocks,omitempty"`
}

type Server struct {
	cfg      config.ServerConfig
	book     *pages.Book
	upgrader websocket.Upgrader
}

func New(cfg config.ServerConfig, book *pages.Book) *Server {
	up := websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBuffer,
		WriteBufferSize: cfg.WriteBuffer,
	}
	if !cfg.CheckOrigin {
		up.CheckOrigin = func(*http.Request) bool { return true }
	}
	return &Server{cfg: cfg, book: book, upgrader: up}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve listens on the configured address until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.WithField("addr", s.cfg.Addr).Info("serving pages")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	type link struct{ Slug, Title string }
	var links []link
	for _, p := range s.book.Pages() {
		links = append(links, link{p.Slug(), p.Title()})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, links); err != nil {
		log.WithError(err).Error("index")
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	logger := log.WithField("remote", r.RemoteAddr)
	logger.Debug("connection opened")

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("read")
			}
			return
		}
		reply := s.handle(ctx, msg)
		if err := conn.WriteJSON(&reply); err != nil {
			logger.WithError(err).Warn("write")
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, msg Message) Message {
	entry := log.WithFields(log.Fields{"type": msg.Type, "page": msg.Page})
	page, err := s.book.Lookup(msg.Page)
	if err != nil {
		return errorReply(entry, err)
	}

	switch msg.Type {
	case "controls":
		return Message{Type: "controls", Page: msg.Page, Controls: page.Controls(msg.Values)}
	case "render":
		start := time.Now()
		out, err := page.Run(ctx, msg.Values)
		if err != nil {
			return errorReply(entry, err)
		}
		blocks, err := Blocks(out)
		if err != nil {
			return errorReply(entry, err)
		}
		entry.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("rendered")
		return Message{Type: "rendered", Page: msg.Page, Blocks: blocks}
	case "save":
		out, err := page.Run(ctx, msg.Values)
		if err != nil {
			return errorReply(entry, err)
		}
		dir, err := SaveOutput(s.cfg.SaveDir, msg.Page, out)
		if err != nil {
			return errorReply(entry, err)
		}
		entry.WithField("dir", dir).Info("saved")
		return Message{Type: "saved", Page: msg.Page, Content: dir}
	default:
		return errorReply(entry, errors.New("unknown message type "+msg.Type))
	}
}

func errorReply(entry *log.Entry, err error) Message {
	entry.WithError(err).Warn("request failed")
	return Message{Type: "error", Content: err.Error()}
}
