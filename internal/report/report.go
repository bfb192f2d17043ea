package report

import (
	"math"
	"time"

	"github.com/qualityline/qualityline/internal/boxes"
	"github.com/qualityline/qualityline/internal/quality"
	"github.com/qualityline/qualityline/internal/registry"
)

// Snapshot is one point-in-time aggregation of the session.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalPieces   int     `json:"total_pieces"`
	ApprovedCount int     `json:"approved_count"`
	RejectedCount int     `json:"rejected_count"`
	ApprovedPct   float64 `json:"approved_pct"`
	RejectedPct   float64 `json:"rejected_pct"`

	// Rejections counts violated criteria per category. One rejected piece
	// may contribute to several categories.
	Rejections map[quality.Reason]int `json:"rejections"`

	Storage StorageSummary `json:"storage"`

	// Quality is nil until at least one piece has been approved.
	Quality *QualityStats `json:"quality,omitempty"`
}

// StorageSummary describes the box state at snapshot time.
type StorageSummary struct {
	ClosedBoxes   int `json:"closed_boxes"`
	OpenBoxes     int `json:"open_boxes"`
	OpenBoxNumber int `json:"open_box_number"`
	OpenBoxFill   int `json:"open_box_fill"`
	Capacity      int `json:"capacity"`
}

// QualityStats aggregates measurements over approved pieces only.
type QualityStats struct {
	AvgWeight float64 `json:"avg_weight_g"`
	MinWeight float64 `json:"min_weight_g"`
	MaxWeight float64 `json:"max_weight_g"`
	AvgLength float64 `json:"avg_length_cm"`
	MinLength float64 `json:"min_length_cm"`
	MaxLength float64 `json:"max_length_cm"`

	// Colors holds per-color counts for colors actually observed,
	// ordered by first appearance among approved pieces.
	Colors []ColorCount `json:"colors"`
}

// ColorCount is one entry of the color distribution.
type ColorCount struct {
	Color string  `json:"color"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// Build aggregates the given pieces and box state into a Snapshot.
// Percentages are rounded to one decimal place; a session with zero pieces
// reports all-zero percentages rather than dividing by zero.
func Build(pieces []registry.Piece, mgr *boxes.Manager, now time.Time) Snapshot {
	snap := Snapshot{
		GeneratedAt: now,
		Rejections:  make(map[quality.Reason]int, len(quality.AllReasons)),
	}
	for _, r := range quality.AllReasons {
		snap.Rejections[r] = 0
	}

	var approved []registry.Piece
	for _, p := range pieces {
		snap.TotalPieces++
		if p.Approved {
			snap.ApprovedCount++
			approved = append(approved, p)
			continue
		}
		snap.RejectedCount++
		for _, reason := range p.Reasons {
			snap.Rejections[reason]++
		}
	}

	if snap.TotalPieces > 0 {
		snap.ApprovedPct = round1(float64(snap.ApprovedCount) / float64(snap.TotalPieces) * 100)
		snap.RejectedPct = round1(float64(snap.RejectedCount) / float64(snap.TotalPieces) * 100)
	}

	openNumber, openFill := mgr.CurrentFill()
	snap.Storage = StorageSummary{
		ClosedBoxes:   len(mgr.ListClosed()),
		OpenBoxes:     len(mgr.ListOpen()),
		OpenBoxNumber: openNumber,
		OpenBoxFill:   openFill,
		Capacity:      mgr.Capacity(),
	}

	if len(approved) > 0 {
		snap.Quality = qualityStats(approved)
	}

	return snap
}

func qualityStats(approved []registry.Piece) *QualityStats {
	qs := &QualityStats{
		MinWeight: approved[0].Weight,
		MaxWeight: approved[0].Weight,
		MinLength: approved[0].Length,
		MaxLength: approved[0].Length,
	}

	var weightSum, lengthSum float64
	counts := make(map[string]int)
	var order []string

	for _, p := range approved {
		weightSum += p.Weight
		lengthSum += p.Length
		qs.MinWeight = math.Min(qs.MinWeight, p.Weight)
		qs.MaxWeight = math.Max(qs.MaxWeight, p.Weight)
		qs.MinLength = math.Min(qs.MinLength, p.Length)
		qs.MaxLength = math.Max(qs.MaxLength, p.Length)

		if _, seen := counts[p.Color]; !seen {
			order = append(order, p.Color)
		}
		counts[p.Color]++
	}

	n := float64(len(approved))
	qs.AvgWeight = weightSum / n
	qs.AvgLength = lengthSum / n

	for _, color := range order {
		qs.Colors = append(qs.Colors, ColorCount{
			Color: color,
			Count: counts[color],
			Pct:   round1(float64(counts[color]) / n * 100),
		})
	}

	return qs
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
