package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/annotation"
)

// UnitPercent marks a record whose points are percentages (0-100) of the
// source image rather than natural pixels. Records are converted to pixel
// space at load time; the replay core only ever sees pixels.
const UnitPercent = "percent"

// AnnotationRecord is the wire form of one recorded mark as produced by the
// capture client.
type AnnotationRecord struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	Points    []annotation.Point `json:"points"`
	Timestamp int64              `json:"timestamp"`
	Color     string             `json:"color,omitempty"`
	Unit      string             `json:"unit,omitempty"`
}

// SessionRecord is one recorded seeing session: metadata plus the ordered
// annotation list, stored as a JSON file in the catalog's sessions
// directory.
type SessionRecord struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Image       string             `json:"image"`
	Created     time.Time          `json:"created"`
	Notes       string             `json:"notes,omitempty"`
	Annotations []AnnotationRecord `json:"annotations"`
}

// ReadSessionRecord loads and validates a session file.
func ReadSessionRecord(path string) (*SessionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("session %s: missing id", path)
	}
	if rec.Image == "" {
		return nil, fmt.Errorf("session %s: missing image reference", path)
	}
	return &rec, nil
}

// Normalize converts the record's annotations to natural pixel space against
// the referenced image's intrinsic size and returns them ordered by
// timestamp. Empty-point records are dropped here; per-type minimums are the
// renderer's concern.
func (r *SessionRecord) Normalize(naturalW, naturalH float64) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(r.Annotations))
	for _, ar := range r.Annotations {
		if len(ar.Points) == 0 {
			continue
		}
		points := make([]annotation.Point, len(ar.Points))
		copy(points, ar.Points)
		if ar.Unit == UnitPercent {
			for i := range points {
				points[i].X = points[i].X / 100 * naturalW
				points[i].Y = points[i].Y / 100 * naturalH
			}
		}
		out = append(out, annotation.Annotation{
			ID:        ar.ID,
			Type:      annotation.Type(ar.Type),
			Points:    points,
			Timestamp: ar.Timestamp,
			Color:     ar.Color,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}
