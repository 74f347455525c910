// Package catalog owns the gallery: the images (and PDF documents rendered
// page by page) under the catalog root, the recorded session files that
// reference them, and the generated thumbnails. It is the read-only source
// every replay view is seeded from; nothing here writes back except the
// thumbnail and page caches.
package catalog

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/annotation"
)

// ErrNotFound is returned for unknown image or session identifiers.
var ErrNotFound = errors.New("catalog: not found")

const (
	imagesDir   = "images"
	sessionsDir = "sessions"
	pagesDir    = ".pages"
	thumbsDir   = ".thumbs"

	pdfRenderDPI = 144
)

// ImageEntry is one gallery image with its intrinsic size.
type ImageEntry struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source,omitempty"` // originating PDF, if any
}

// SessionSummary is the listing form of a recorded session.
type SessionSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Created  string `json:"created"`
	Marks    int    `json:"marks"`
	Duration int64  `json:"durationMs"`
}

// Catalog indexes one root directory. Scan builds the index once at startup;
// the catalog is read-only afterwards, matching the replay core's
// assumption that annotation lists are finished and immutable.
type Catalog struct {
	root     string
	images   map[string]ImageEntry
	sessions map[string]*SessionRecord
}

// New creates an empty catalog over a root directory.
func New(root string) *Catalog {
	return &Catalog{
		root:     root,
		images:   make(map[string]ImageEntry),
		sessions: make(map[string]*SessionRecord),
	}
}

// Scan indexes the images and sessions directories. PDF documents under
// images/ are rendered page by page into the page cache and each page
// becomes a gallery image. Unreadable files are logged and skipped; a bad
// file must not take down the gallery.
func (c *Catalog) Scan() error {
	if err := c.scanImages(); err != nil {
		return err
	}
	if err := c.scanSessions(); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) scanImages() error {
	dir := filepath.Join(c.root, imagesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading images directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg", ".jpeg":
			entry, err := probeImage(filepath.Join(dir, name), name)
			if err != nil {
				log.Printf("catalog: skipping %s: %v", name, err)
				continue
			}
			c.images[name] = entry
		case ".pdf":
			if err := c.ingestPDF(filepath.Join(dir, name), name); err != nil {
				log.Printf("catalog: skipping %s: %v", name, err)
			}
		}
	}
	return nil
}

// ingestPDF renders each page of a document into the page cache as PNG and
// registers the pages as gallery images. Already-rendered pages are reused.
func (c *Catalog) ingestPDF(path, name string) error {
	doc, err := fitz.New(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	cacheDir := filepath.Join(c.root, pagesDir)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for i := 0; i < doc.NumPage(); i++ {
		pageName := fmt.Sprintf("%s-p%02d.png", stem, i+1)
		pagePath := filepath.Join(cacheDir, pageName)

		if _, err := os.Stat(pagePath); err != nil {
			img, err := doc.ImageDPI(i, pdfRenderDPI)
			if err != nil {
				return fmt.Errorf("rendering page %d: %w", i+1, err)
			}
			if err := writePNG(pagePath, img); err != nil {
				return err
			}
		}

		entry, err := probeImage(pagePath, pageName)
		if err != nil {
			return err
		}
		entry.Source = name
		c.images[pageName] = entry
	}
	return nil
}

func (c *Catalog) scanSessions() error {
	dir := filepath.Join(c.root, sessionsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading sessions directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := ReadSessionRecord(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Printf("catalog: skipping %s: %v", e.Name(), err)
			continue
		}
		if _, ok := c.images[rec.Image]; !ok {
			log.Printf("catalog: session %s references unknown image %s", rec.ID, rec.Image)
			continue
		}
		c.sessions[rec.ID] = rec
	}
	return nil
}

// Images returns the gallery images sorted by name.
func (c *Catalog) Images() []ImageEntry {
	out := make([]ImageEntry, 0, len(c.images))
	for _, e := range c.images {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Sessions returns listing summaries sorted by creation time, newest first.
func (c *Catalog) Sessions() []SessionSummary {
	out := make([]SessionSummary, 0, len(c.sessions))
	for _, rec := range c.sessions {
		img := c.images[rec.Image]
		norm := rec.Normalize(float64(img.Width), float64(img.Height))
		out = append(out, SessionSummary{
			ID:       rec.ID,
			Title:    rec.Title,
			Image:    rec.Image,
			Created:  rec.Created.Format("2006-01-02 15:04"),
			Marks:    len(norm),
			Duration: annotation.Duration(norm),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created > out[j].Created })
	return out
}

// Session returns a session record by id.
func (c *Catalog) Session(id string) (*SessionRecord, error) {
	rec, ok := c.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Image returns a gallery image entry by name.
func (c *Catalog) Image(name string) (ImageEntry, error) {
	e, ok := c.images[name]
	if !ok {
		return ImageEntry{}, ErrNotFound
	}
	return e, nil
}

// ImagePath resolves an image name to its on-disk path, whether it is a
// plain file or a cached PDF page.
func (c *Catalog) ImagePath(name string) (string, error) {
	e, ok := c.images[name]
	if !ok {
		return "", ErrNotFound
	}
	if e.Source != "" {
		return filepath.Join(c.root, pagesDir, name), nil
	}
	return filepath.Join(c.root, imagesDir, name), nil
}

// ThumbPath resolves an image name to its thumbnail path. The file exists
// only after GenerateThumbnails has run.
func (c *Catalog) ThumbPath(name string) (string, error) {
	if _, ok := c.images[name]; !ok {
		return "", ErrNotFound
	}
	return filepath.Join(c.root, thumbsDir, thumbName(name)), nil
}

func probeImage(path, name string) (ImageEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageEntry{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return ImageEntry{}, err
	}
	return ImageEntry{Name: name, Width: cfg.Width, Height: cfg.Height}, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
