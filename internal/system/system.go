package system

import (
	"log/slog"
	"sync"
	"time"

	"github.com/qualityline/qualityline/internal/boxes"
	"github.com/qualityline/qualityline/internal/quality"
	"github.com/qualityline/qualityline/internal/registry"
	"github.com/qualityline/qualityline/internal/report"
)

// RegistrationResult reports the outcome of one registration.
type RegistrationResult struct {
	Piece registry.Piece `json:"piece"`

	// BoxNumber is the box the piece was placed in; zero for rejected pieces.
	BoxNumber int `json:"box_number,omitempty"`

	// BoxClosed is true when this registration sealed a box.
	BoxClosed bool `json:"box_closed,omitempty"`

	// NewBoxNumber is the fresh box opened after a seal; zero otherwise.
	NewBoxNumber int `json:"new_box_number,omitempty"`
}

// BoxFilter selects which boxes ListBoxes returns.
type BoxFilter string

const (
	BoxesOpen   BoxFilter = "open"
	BoxesClosed BoxFilter = "closed"
)

// System is the owned aggregate holding all session state. Create one with
// New and pass it to the shell and monitor explicitly; there is no package
// singleton.
type System struct {
	mu       sync.RWMutex
	criteria quality.Criteria
	pieces   *registry.Registry
	boxes    *boxes.Manager
	now      func() time.Time
}

// New creates a System with the given acceptance criteria and box capacity.
func New(criteria quality.Criteria, capacity int) *System {
	return &System{
		criteria: criteria,
		pieces:   registry.New(),
		boxes:    boxes.NewManager(capacity),
		now:      time.Now,
	}
}

// SetCriteria replaces the acceptance criteria for future registrations.
// Verdicts already recorded are never recomputed.
func (s *System) SetCriteria(c quality.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	slog.Info("system: acceptance criteria updated",
		"weight_min", c.MinWeight, "weight_max", c.MaxWeight,
		"length_min", c.MinLength, "length_max", c.MaxLength,
		"colors", c.Colors,
	)
}

// Criteria returns the criteria currently applied to new registrations.
func (s *System) Criteria() quality.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// RegisterPiece evaluates and records a piece, placing it into a box when
// approved. Fails with registry.ErrDuplicateID without mutating anything.
func (s *System) RegisterPiece(id string, weight float64, color string, length float64) (RegistrationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece, err := s.pieces.Register(id, s.criteria, weight, color, length)
	if err != nil {
		return RegistrationResult{}, err
	}

	result := RegistrationResult{Piece: piece}
	if piece.Approved {
		placement := s.boxes.PlaceApproved(piece.ID)
		result.BoxNumber = placement.BoxNumber
		result.BoxClosed = placement.Closed
		result.NewBoxNumber = placement.NextBoxNumber
	}

	slog.Info("piece registered",
		"id", piece.ID,
		"approved", piece.Approved,
		"reasons", piece.Reasons,
		"box", result.BoxNumber,
		"box_closed", result.BoxClosed,
	)
	return result, nil
}

// RemovePiece deletes a piece and, when it was approved, detaches it from its
// box so membership stays consistent with the registry. Fails with
// registry.ErrNotFound without mutating anything.
func (s *System) RemovePiece(id string) (registry.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece, err := s.pieces.Remove(id)
	if err != nil {
		return registry.Piece{}, err
	}

	if piece.Approved {
		if boxNum, ok := s.boxes.Detach(id); ok {
			slog.Info("piece detached from box", "id", id, "box", boxNum)
		} else {
			// Approved pieces are always placed at registration, so a miss
			// here means registry and box state diverged.
			slog.Error("approved piece was in no box", "id", id)
		}
	}

	slog.Info("piece removed", "id", id, "approved", piece.Approved)
	return piece, nil
}

// ListPieces returns pieces matching the filter, in registration order.
func (s *System) ListPieces(f registry.Filter) []registry.Piece {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pieces.List(f)
}

// ListBoxes returns boxes matching the filter, in creation order.
func (s *System) ListBoxes(f BoxFilter) []boxes.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f == BoxesClosed {
		return s.boxes.ListClosed()
	}
	return s.boxes.ListOpen()
}

// Report builds the aggregate statistics snapshot.
func (s *System) Report() report.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.Build(s.pieces.List(registry.FilterAll), s.boxes, s.now())
}
