package system

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/qualityline/qualityline/internal/quality"
	"github.com/qualityline/qualityline/internal/registry"
)

func newTestSystem() *System {
	return New(quality.DefaultCriteria(), 10)
}

func registerApproved(t *testing.T, s *System, n int) []RegistrationResult {
	t.Helper()
	out := make([]RegistrationResult, 0, n)
	for i := 0; i < n; i++ {
		res, err := s.RegisterPiece(fmt.Sprintf("P%04d", i+1), 100, "blue", 15)
		if err != nil {
			t.Fatalf("RegisterPiece %d: %v", i+1, err)
		}
		out = append(out, res)
	}
	return out
}

func TestRegisterPiece_ApprovedIsPlaced(t *testing.T) {
	s := newTestSystem()

	res, err := s.RegisterPiece("P0001", 100, "blue", 15)
	if err != nil {
		t.Fatalf("RegisterPiece: %v", err)
	}
	if !res.Piece.Approved {
		t.Fatalf("Approved: got false (reasons %v)", res.Piece.Reasons)
	}
	if res.BoxNumber != 1 {
		t.Errorf("BoxNumber: got %d, want 1", res.BoxNumber)
	}

	open := s.ListBoxes(BoxesOpen)
	if len(open) != 1 || len(open[0].PieceIDs) != 1 {
		t.Errorf("open boxes: got %+v, want one box holding one piece", open)
	}
}

func TestRegisterPiece_RejectedSkipsBoxes(t *testing.T) {
	s := newTestSystem()

	res, err := s.RegisterPiece("P0001", 110, "red", 25)
	if err != nil {
		t.Fatalf("RegisterPiece: %v", err)
	}
	if res.Piece.Approved {
		t.Fatal("Approved: got true")
	}
	if len(res.Piece.Reasons) != 3 {
		t.Errorf("Reasons: got %v, want all three", res.Piece.Reasons)
	}
	if res.BoxNumber != 0 {
		t.Errorf("BoxNumber: got %d, want 0 for rejected piece", res.BoxNumber)
	}
	if len(s.ListPieces(registry.FilterAll)) != 1 {
		t.Error("rejected piece not recorded in registry")
	}
	if len(s.ListBoxes(BoxesOpen)) != 0 {
		t.Error("rejected piece created a box")
	}
}

func TestRegisterPiece_TenthSealsBoxAndOpensNext(t *testing.T) {
	s := newTestSystem()
	results := registerApproved(t, s, 10)

	tenth := results[9]
	if !tenth.BoxClosed {
		t.Fatal("10th registration: BoxClosed = false")
	}
	if tenth.BoxNumber != 1 || tenth.NewBoxNumber != 2 {
		t.Errorf("10th registration: sealed #%d opened #%d, want #1/#2", tenth.BoxNumber, tenth.NewBoxNumber)
	}

	if got := len(s.ListBoxes(BoxesClosed)); got != 1 {
		t.Errorf("closed boxes: got %d, want 1", got)
	}
	open := s.ListBoxes(BoxesOpen)
	if len(open) != 1 || open[0].Number != 2 || len(open[0].PieceIDs) != 0 {
		t.Errorf("open box: got %+v, want empty #2", open)
	}
}

func TestRegisterPiece_DuplicateID(t *testing.T) {
	s := newTestSystem()
	registerApproved(t, s, 1)

	_, err := s.RegisterPiece("P0001", 96, "green", 12)
	if !errors.Is(err, registry.ErrDuplicateID) {
		t.Fatalf("duplicate: got %v, want ErrDuplicateID", err)
	}
	if got := len(s.ListPieces(registry.FilterAll)); got != 1 {
		t.Errorf("registry size after failed registration: got %d, want 1", got)
	}
	if fill := len(s.ListBoxes(BoxesOpen)[0].PieceIDs); fill != 1 {
		t.Errorf("box fill after failed registration: got %d, want 1", fill)
	}
}

func TestRemovePiece_ApprovedDetachesFromBox(t *testing.T) {
	s := newTestSystem()
	registerApproved(t, s, 3)

	p, err := s.RemovePiece("P0002")
	if err != nil {
		t.Fatalf("RemovePiece: %v", err)
	}
	if p.ID != "P0002" {
		t.Errorf("removed: got %q", p.ID)
	}

	open := s.ListBoxes(BoxesOpen)
	if got := len(open[0].PieceIDs); got != 2 {
		t.Errorf("box fill after removal: got %d, want 2", got)
	}
	for _, id := range open[0].PieceIDs {
		if id == "P0002" {
			t.Error("removed piece still in box")
		}
	}
}

func TestRemovePiece_FromClosedBoxKeepsSeal(t *testing.T) {
	s := newTestSystem()
	registerApproved(t, s, 10) // box 1 sealed

	if _, err := s.RemovePiece("P0005"); err != nil {
		t.Fatalf("RemovePiece: %v", err)
	}

	closed := s.ListBoxes(BoxesClosed)
	if len(closed) != 1 {
		t.Fatalf("closed boxes: got %d, want 1 — removal must not reopen", len(closed))
	}
	if got := len(closed[0].PieceIDs); got != 9 {
		t.Errorf("sealed box contents: got %d, want 9", got)
	}

	// The next approval goes to the open successor, not the sealed box.
	res, err := s.RegisterPiece("P0011", 100, "green", 15)
	if err != nil {
		t.Fatalf("RegisterPiece: %v", err)
	}
	if res.BoxNumber != 2 {
		t.Errorf("post-removal placement: got box %d, want 2", res.BoxNumber)
	}
}

func TestRemovePiece_NotFound(t *testing.T) {
	s := newTestSystem()

	_, err := s.RemovePiece("missing")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("RemovePiece: got %v, want ErrNotFound", err)
	}
}

func TestRemovePiece_RejectedTouchesNoBoxes(t *testing.T) {
	s := newTestSystem()
	s.RegisterPiece("R1", 110, "red", 25)
	registerApproved(t, s, 2)

	if _, err := s.RemovePiece("R1"); err != nil {
		t.Fatalf("RemovePiece: %v", err)
	}
	open := s.ListBoxes(BoxesOpen)
	if len(open) != 1 || len(open[0].PieceIDs) != 2 {
		t.Errorf("boxes disturbed by rejected-piece removal: %+v", open)
	}
}

func TestSetCriteria_AppliesToFutureOnly(t *testing.T) {
	s := newTestSystem()
	s.RegisterPiece("P0001", 100, "blue", 15) // approved under defaults

	tightened := quality.DefaultCriteria()
	tightened.MaxWeight = 99
	s.SetCriteria(tightened)

	// Existing verdict untouched.
	p := s.ListPieces(registry.FilterApproved)
	if len(p) != 1 || p[0].ID != "P0001" {
		t.Errorf("existing verdict changed: %+v", p)
	}

	// New registrations see the new threshold.
	res, err := s.RegisterPiece("P0002", 100, "blue", 15)
	if err != nil {
		t.Fatalf("RegisterPiece: %v", err)
	}
	if res.Piece.Approved {
		t.Error("piece approved despite tightened criteria")
	}
}

func TestReport_Idempotent(t *testing.T) {
	s := newTestSystem()
	s.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	registerApproved(t, s, 5)
	s.RegisterPiece("R1", 90, "blue", 15)

	first := s.Report()
	second := s.Report()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Report diverged without mutation:\n%+v\n%+v", first, second)
	}
	if first.TotalPieces != 6 || first.ApprovedCount != 5 {
		t.Errorf("Report counts: %+v", first)
	}
}
