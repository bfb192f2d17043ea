package boxes

import "time"

// DefaultCapacity is the number of pieces a box holds before it is sealed.
const DefaultCapacity = 10

// Status is the lifecycle state of a box.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Box is one shipment box. Numbers are assigned monotonically from 1 and are
// never reused; boxes persist for traceability even if removals empty them.
type Box struct {
	Number    int        `json:"number"`
	PieceIDs  []string   `json:"piece_ids"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// Placement reports where PlaceApproved put a piece and whether the insert
// sealed the box.
type Placement struct {
	// BoxNumber is the box the piece landed in.
	BoxNumber int

	// Closed is true when this insert filled the box to capacity.
	Closed bool

	// NextBoxNumber is the number of the fresh box opened after a close.
	// Zero when Closed is false.
	NextBoxNumber int
}

// Manager owns the ordered sequence of boxes: zero or more closed boxes
// followed by at most one open box. Not safe for concurrent use on its own;
// the system aggregate serializes access.
type Manager struct {
	capacity int
	boxes    []*Box
	now      func() time.Time // injectable for deterministic tests
}

// NewManager creates a Manager with the given capacity.
// A capacity below 1 falls back to DefaultCapacity.
func NewManager(capacity int) *Manager {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Manager{
		capacity: capacity,
		now:      time.Now,
	}
}

// Capacity returns the per-box capacity.
func (m *Manager) Capacity() int {
	return m.capacity
}

// PlaceApproved appends the piece ID to the current open box, creating the
// first box lazily. When the insert brings the box to exactly capacity it is
// sealed and its successor opened in the same call, so a box can never sit
// full-but-open waiting for an eleventh piece.
func (m *Manager) PlaceApproved(pieceID string) Placement {
	box := m.currentOpen()
	if box == nil {
		box = m.openNext()
	}

	box.PieceIDs = append(box.PieceIDs, pieceID)

	if len(box.PieceIDs) == m.capacity {
		closedAt := m.now()
		box.Status = StatusClosed
		box.ClosedAt = &closedAt
		next := m.openNext()
		return Placement{BoxNumber: box.Number, Closed: true, NextBoxNumber: next.Number}
	}

	return Placement{BoxNumber: box.Number}
}

// Detach removes pieceID from whichever box holds it and returns that box's
// number. The search covers closed boxes too — the piece may have been sealed
// long ago. The box's status is untouched: a closed box whose count drops
// below capacity stays closed. Returns (0, false) if no box holds the piece.
func (m *Manager) Detach(pieceID string) (int, bool) {
	for _, box := range m.boxes {
		for i, id := range box.PieceIDs {
			if id == pieceID {
				box.PieceIDs = append(box.PieceIDs[:i], box.PieceIDs[i+1:]...)
				return box.Number, true
			}
		}
	}
	return 0, false
}

// ListOpen returns the open boxes (at most one). Returned values are copies.
func (m *Manager) ListOpen() []Box {
	return m.list(StatusOpen)
}

// ListClosed returns every closed box in creation order. Returned values are copies.
func (m *Manager) ListClosed() []Box {
	return m.list(StatusClosed)
}

// CurrentFill returns the open box's number and fill level. When no box has
// been created yet it reports box 0 with fill 0.
func (m *Manager) CurrentFill() (boxNumber, fill int) {
	box := m.currentOpen()
	if box == nil {
		return 0, 0
	}
	return box.Number, len(box.PieceIDs)
}

func (m *Manager) currentOpen() *Box {
	if len(m.boxes) == 0 {
		return nil
	}
	last := m.boxes[len(m.boxes)-1]
	if last.Status != StatusOpen {
		return nil
	}
	return last
}

func (m *Manager) openNext() *Box {
	box := &Box{
		Number:    len(m.boxes) + 1,
		Status:    StatusOpen,
		CreatedAt: m.now(),
	}
	m.boxes = append(m.boxes, box)
	return box
}

func (m *Manager) list(s Status) []Box {
	var out []Box
	for _, box := range m.boxes {
		if box.Status != s {
			continue
		}
		cp := *box
		cp.PieceIDs = append([]string(nil), box.PieceIDs...)
		out = append(out, cp)
	}
	return out
}
