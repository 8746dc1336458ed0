package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	sse "github.com/tmaxmax/go-sse"

	"github.com/leggera/lg2e2e/pkg/render"
)

//go:embed templates
var content embed.FS

// replaySize is the number of streamed events a reconnecting client can catch up on.
const replaySize = 1000

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Addr  string // listen address, e.g. ":8080"
	Title string // page title, usually the deployment url
}

// Server streams verification events to the browser and serves the last report.
type Server struct {
	cfg    ServerConfig
	buffer *Buffer
	stream *sse.Server
	tmpl   *template.Template
	srv    *http.Server

	mu     sync.RWMutex
	report *render.Report
}

// NewServer creates a new web server keeping its history in buffer.
func NewServer(cfg ServerConfig, buffer *Buffer) (*Server, error) {
	replayer, err := sse.NewFiniteReplayer(replaySize, true)
	if err != nil {
		return nil, fmt.Errorf("sse replayer: %w", err)
	}
	tmpl, err := template.ParseFS(content, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if cfg.Title == "" {
		cfg.Title = "lg2e2e"
	}
	return &Server{
		cfg:    cfg,
		buffer: buffer,
		stream: &sse.Server{Provider: &sse.Joe{Replayer: replayer}},
		tmpl:   tmpl,
	}, nil
}

// Publish stores e in the history and streams it to connected clients.
func (s *Server) Publish(e Event) error {
	s.buffer.Add(e)
	data, err := e.JSON()
	if err != nil {
		return err
	}
	msg := &sse.Message{}
	msg.AppendData(string(data))
	if err := s.stream.Publish(msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// SetReport replaces the report served by /api/report.
func (s *Server) SetReport(r render.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = &r
}

// Handler returns the http handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.Handle("/events", s.stream)
	mux.HandleFunc("/api/events", s.handleHistory)
	mux.HandleFunc("/api/report", s.handleReport)
	return mux
}

// Start begins listening for HTTP requests.
// blocks until ctx is canceled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.srv.RegisterOnShutdown(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.stream.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] sse shutdown: %v", err)
		}
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("http server: %w", err)
}

type templateData struct {
	Title  string
	Events []Event
}

// handleIndex serves the live page with the buffered history, new events arrive over /events.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, templateData{Title: s.cfg.Title, Events: s.buffer.All()}); err != nil {
		http.Error(w, "template execution error", http.StatusInternalServerError)
	}
}

// handleHistory serves buffered events as JSON, optionally for one target.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	events := s.buffer.All()
	if target := r.URL.Query().Get("target"); target != "" {
		events = s.buffer.ByTarget(target)
	}
	if events == nil {
		events = []Event{}
	}
	writeJSON(w, events)
}

// handleReport serves the report of the last finished run.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()
	if report == nil {
		http.Error(w, "no finished run yet", http.StatusNotFound)
		return
	}
	writeJSON(w, report)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] failed to encode response: %v", err)
		http.Error(w, "unable to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
