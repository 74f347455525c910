// Package server exposes the catalogue and the replay transport to the
// browser client: JSON listings over HTTP, images and thumbnails as static
// files, and one websocket per open replay view.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/catalog"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/config"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/system"
)

const qrSize = 256

// Server serves the gallery API and replay websockets over one catalog.
type Server struct {
	cfg          config.Config
	catalog      *catalog.Catalog
	openSessions atomic.Int64
	http         *http.Server
}

// New wires a server over a scanned catalog.
func New(cfg config.Config, cat *catalog.Catalog) *Server {
	s := &Server{cfg: cfg, catalog: cat}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/gallery", s.handleGallery)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSession)
	mux.HandleFunc("GET /api/sessions/{id}/qr", s.handleSessionQR)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /images/{name}", s.handleImage)
	mux.HandleFunc("GET /thumbs/{name}", s.handleThumb)
	mux.HandleFunc("GET /ws/sessions/{id}", s.handleReplay)
	mux.Handle("/", http.FileServer(http.Dir(cfg.ClientDir)))

	s.http = &http.Server{Addr: cfg.Listen, Handler: mux}
	return s
}

// Handler exposes the route table, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.cfg.Listen)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// galleryResponse is the browse-view payload: all images plus all recorded
// sessions.
type galleryResponse struct {
	Images   []catalog.ImageEntry     `json:"images"`
	Sessions []catalog.SessionSummary `json:"sessions"`
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, galleryResponse{
		Images:   s.catalog.Images(),
		Sessions: s.catalog.Sessions(),
	})
}

// sessionResponse is the detail-view payload: the record plus the natural
// size of its image, which the client needs before it can size the replay
// surface.
type sessionResponse struct {
	*catalog.SessionRecord
	ImageWidth  int `json:"imageWidth"`
	ImageHeight int `json:"imageHeight"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, sessionResponse{SessionRecord: rec, ImageWidth: img.Width, ImageHeight: img.Height})
}

func (s *Server) handleSessionQR(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.catalog.Session(id); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	share := fmt.Sprintf("%s/sessions/%s", s.cfg.PublicURL, id)
	png, err := qrcode.Encode(share, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, system.Collect(int(s.openSessions.Load()), len(s.catalog.Images())))
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	path, err := s.catalog.ImagePath(r.PathValue("name"))
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleThumb(w http.ResponseWriter, r *http.Request) {
	path, err := s.catalog.ThumbPath(r.PathValue("name"))
	if err != nil {
		http.Error(w, "thumbnail not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}
