package registry

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/qualityline/qualityline/internal/quality"
)

// Sentinel errors returned by Register and Remove.
var (
	ErrDuplicateID = errors.New("piece id already registered")
	ErrNotFound    = errors.New("piece not found")
)

// Piece is one manufactured piece after evaluation. The verdict and reasons
// are fixed at registration time and never recomputed — re-evaluating under
// changed criteria would rewrite history.
type Piece struct {
	ID           string           `json:"id"`
	Weight       float64          `json:"weight_g"`
	Color        string           `json:"color"`
	Length       float64          `json:"length_cm"`
	Approved     bool             `json:"approved"`
	Reasons      []quality.Reason `json:"reasons,omitempty"`
	RegisteredAt time.Time        `json:"registered_at"`
}

// Filter selects which pieces List returns.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterApproved Filter = "approved"
	FilterRejected Filter = "rejected"
)

// Registry holds every registered piece, keyed by ID, in registration order.
// It is not safe for concurrent use on its own; the system aggregate
// serializes access.
type Registry struct {
	byID  map[string]*Piece
	order []string
	now   func() time.Time // injectable for deterministic tests
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byID: make(map[string]*Piece),
		now:  time.Now,
	}
}

// Register evaluates the measurements against the criteria and stores the
// resulting piece under id. Fails with ErrDuplicateID if id is already
// present; nothing is mutated on failure.
func (r *Registry) Register(id string, c quality.Criteria, weight float64, color string, length float64) (Piece, error) {
	if _, exists := r.byID[id]; exists {
		return Piece{}, errors.Wrapf(ErrDuplicateID, "%q", id)
	}

	res := quality.Evaluate(c, weight, color, length)
	p := &Piece{
		ID:           id,
		Weight:       weight,
		Color:        res.Color,
		Length:       length,
		Approved:     res.Approved,
		Reasons:      res.Reasons,
		RegisteredAt: r.now(),
	}

	r.byID[id] = p
	r.order = append(r.order, id)
	return *p, nil
}

// Remove deletes the piece with the given id and returns it.
// Fails with ErrNotFound if absent; nothing is mutated on failure.
func (r *Registry) Remove(id string) (Piece, error) {
	p, exists := r.byID[id]
	if !exists {
		return Piece{}, errors.Wrapf(ErrNotFound, "%q", id)
	}

	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return *p, nil
}

// Get returns the piece with the given id, if present.
func (r *Registry) Get(id string) (Piece, bool) {
	p, ok := r.byID[id]
	if !ok {
		return Piece{}, false
	}
	return *p, true
}

// List returns the pieces matching the filter, in registration order.
// Returned values are copies; callers cannot mutate registry state.
func (r *Registry) List(f Filter) []Piece {
	out := make([]Piece, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		switch f {
		case FilterApproved:
			if !p.Approved {
				continue
			}
		case FilterRejected:
			if p.Approved {
				continue
			}
		}
		out = append(out, *p)
	}
	return out
}

// Len returns the number of registered pieces.
func (r *Registry) Len() int {
	return len(r.byID)
}
