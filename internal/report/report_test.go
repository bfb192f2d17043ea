package report

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/qualityline/qualityline/internal/boxes"
	"github.com/qualityline/qualityline/internal/quality"
	"github.com/qualityline/qualityline/internal/registry"
)

var testTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func approvedPiece(id string, weight, length float64, color string) registry.Piece {
	return registry.Piece{ID: id, Weight: weight, Color: color, Length: length, Approved: true}
}

func rejectedPiece(id string, reasons ...quality.Reason) registry.Piece {
	return registry.Piece{ID: id, Weight: 110, Color: "red", Length: 25, Reasons: reasons}
}

func TestBuild_EmptySession(t *testing.T) {
	snap := Build(nil, boxes.NewManager(10), testTime)

	if snap.TotalPieces != 0 || snap.ApprovedCount != 0 || snap.RejectedCount != 0 {
		t.Errorf("counts: got %+v, want zeros", snap)
	}
	if snap.ApprovedPct != 0 || snap.RejectedPct != 0 {
		t.Errorf("percentages on empty session: got %.1f/%.1f, want 0/0", snap.ApprovedPct, snap.RejectedPct)
	}
	if snap.Quality != nil {
		t.Error("Quality: got stats for empty session, want nil")
	}
	if snap.Storage.OpenBoxes != 0 || snap.Storage.ClosedBoxes != 0 {
		t.Errorf("Storage: got %+v, want no boxes", snap.Storage)
	}
}

func TestBuild_MixedSession(t *testing.T) {
	// 20 approved, 5 rejected: weight reasons on 2, color on 2, length on 3.
	var pieces []registry.Piece
	mgr := boxes.NewManager(10)
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("A%02d", i)
		pieces = append(pieces, approvedPiece(id, 100, 15, "blue"))
		mgr.PlaceApproved(id)
	}
	pieces = append(pieces,
		rejectedPiece("R1", quality.ReasonWeightOutOfRange),
		rejectedPiece("R2", quality.ReasonWeightOutOfRange, quality.ReasonLengthOutOfRange),
		rejectedPiece("R3", quality.ReasonInvalidColor),
		rejectedPiece("R4", quality.ReasonInvalidColor, quality.ReasonLengthOutOfRange),
		rejectedPiece("R5", quality.ReasonLengthOutOfRange),
	)

	snap := Build(pieces, mgr, testTime)

	if snap.TotalPieces != 25 {
		t.Errorf("TotalPieces: got %d, want 25", snap.TotalPieces)
	}
	if snap.ApprovedPct != 80.0 {
		t.Errorf("ApprovedPct: got %.1f, want 80.0", snap.ApprovedPct)
	}
	if snap.RejectedPct != 20.0 {
		t.Errorf("RejectedPct: got %.1f, want 20.0", snap.RejectedPct)
	}
	if got := snap.Rejections[quality.ReasonWeightOutOfRange]; got != 2 {
		t.Errorf("weight rejections: got %d, want 2", got)
	}
	if got := snap.Rejections[quality.ReasonInvalidColor]; got != 2 {
		t.Errorf("color rejections: got %d, want 2", got)
	}
	if got := snap.Rejections[quality.ReasonLengthOutOfRange]; got != 3 {
		t.Errorf("length rejections: got %d, want 3", got)
	}

	// 20 approved pieces at capacity 10: boxes 1 and 2 sealed, box 3 open.
	if snap.Storage.ClosedBoxes != 2 {
		t.Errorf("ClosedBoxes: got %d, want 2", snap.Storage.ClosedBoxes)
	}
	if snap.Storage.OpenBoxes != 1 {
		t.Errorf("OpenBoxes: got %d, want 1", snap.Storage.OpenBoxes)
	}
	if snap.Storage.OpenBoxNumber != 3 || snap.Storage.OpenBoxFill != 0 {
		t.Errorf("open box: got #%d fill %d, want #3 fill 0", snap.Storage.OpenBoxNumber, snap.Storage.OpenBoxFill)
	}
}

func TestBuild_QualityStats(t *testing.T) {
	pieces := []registry.Piece{
		approvedPiece("A1", 96, 12, "blue"),
		approvedPiece("A2", 104, 18, "green"),
		approvedPiece("A3", 100, 15, "blue"),
		rejectedPiece("R1", quality.ReasonWeightOutOfRange), // excluded from quality stats
	}

	snap := Build(pieces, boxes.NewManager(10), testTime)
	qs := snap.Quality
	if qs == nil {
		t.Fatal("Quality: nil")
	}

	if qs.MinWeight != 96 || qs.MaxWeight != 104 {
		t.Errorf("weight range: got [%v, %v], want [96, 104]", qs.MinWeight, qs.MaxWeight)
	}
	if qs.AvgWeight != 100 {
		t.Errorf("AvgWeight: got %v, want 100", qs.AvgWeight)
	}
	if qs.MinLength != 12 || qs.MaxLength != 18 {
		t.Errorf("length range: got [%v, %v], want [12, 18]", qs.MinLength, qs.MaxLength)
	}
	if qs.AvgLength != 15 {
		t.Errorf("AvgLength: got %v, want 15", qs.AvgLength)
	}

	want := []ColorCount{
		{Color: "blue", Count: 2, Pct: 66.7},
		{Color: "green", Count: 1, Pct: 33.3},
	}
	if !reflect.DeepEqual(qs.Colors, want) {
		t.Errorf("Colors: got %+v, want %+v", qs.Colors, want)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	pieces := []registry.Piece{
		approvedPiece("A1", 100, 15, "blue"),
		rejectedPiece("R1", quality.ReasonInvalidColor),
	}
	mgr := boxes.NewManager(10)
	mgr.PlaceApproved("A1")

	first := Build(pieces, mgr, testTime)
	second := Build(pieces, mgr, testTime)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Build diverged:\n%+v\n%+v", first, second)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{66.666, 66.7},
		{33.333, 33.3},
		{80.0, 80.0},
		{0.05, 0.1},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
