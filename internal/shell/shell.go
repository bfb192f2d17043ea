package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/qualityline/qualityline/internal/alerts"
	"github.com/qualityline/qualityline/internal/registry"
	"github.com/qualityline/qualityline/internal/system"
)

// Shell runs the interactive menu loop against one system aggregate.
type Shell struct {
	sys    *system.System
	engine *alerts.Engine // may be nil when alerting is not configured
	in     *bufio.Scanner
	idgen  IDGenerator
}

// New creates a Shell reading operator input from in.
func New(sys *system.System, engine *alerts.Engine, in io.Reader, idgen IDGenerator) *Shell {
	return &Shell{
		sys:    sys,
		engine: engine,
		in:     bufio.NewScanner(in),
		idgen:  idgen,
	}
}

// Run displays the menu and dispatches operator choices until exit is chosen
// or input ends.
func (s *Shell) Run() error {
	pterm.DefaultHeader.WithFullWidth().Println("QualityLine piece inspection")

	for {
		pterm.DefaultSection.Println("Menu")
		pterm.Println("  1. Register piece")
		pterm.Println("  2. List pieces")
		pterm.Println("  3. Remove piece")
		pterm.Println("  4. List closed boxes")
		pterm.Println("  5. Current open box")
		pterm.Println("  6. Production report")
		pterm.Println("  0. Exit")

		choice, ok := s.prompt("Option: ")
		if !ok {
			return nil // input closed
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.registerPiece()
		case "2":
			s.listPieces()
		case "3":
			s.removePiece()
		case "4":
			s.listClosedBoxes()
		case "5":
			s.showOpenBox()
		case "6":
			s.showReport()
		case "0":
			pterm.Info.Println("Session ended.")
			return nil
		default:
			pterm.Warning.Printf("Unknown option %q\n", strings.TrimSpace(choice))
		}
	}
}

// prompt prints label and reads one line. ok is false when input is closed.
func (s *Shell) prompt(label string) (string, bool) {
	pterm.Print(label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// promptFloat re-prompts until the operator enters a positive number or
// input closes.
func (s *Shell) promptFloat(label string) (float64, bool) {
	for {
		raw, ok := s.prompt(label)
		if !ok {
			return 0, false
		}
		v, err := parsePositiveFloat(raw)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		return v, true
	}
}

func (s *Shell) registerPiece() {
	id := s.idgen.Next()
	pterm.Info.Printf("Piece ID: %s\n", id)

	weight, ok := s.promptFloat("Weight (g): ")
	if !ok {
		return
	}

	var color string
	for {
		raw, ok := s.prompt("Color: ")
		if !ok {
			return
		}
		c, err := parseColor(raw)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		color = c
		break
	}

	length, ok := s.promptFloat("Length (cm): ")
	if !ok {
		return
	}

	res, err := s.sys.RegisterPiece(id, weight, color, length)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateID) {
			pterm.Error.Printf("ID %s is already registered\n", id)
		} else {
			pterm.Error.Println(err)
		}
		return
	}

	if res.Piece.Approved {
		pterm.Success.Printf("Piece %s APPROVED — placed in box #%d\n", id, res.BoxNumber)
		if res.BoxClosed {
			pterm.Info.Printf("Box #%d closed at capacity; box #%d opened\n",
				res.BoxNumber, res.NewBoxNumber)
		}
	} else {
		pterm.Error.Printf("Piece %s REJECTED\n", id)
		for _, reason := range res.Piece.Reasons {
			pterm.Printf("  %s %s\n", pterm.Gray("→"), reasonText(reason))
		}
	}

	if s.engine != nil {
		s.engine.Evaluate(s.sys.Report())
	}
}

func (s *Shell) listPieces() {
	approved := s.sys.ListPieces(registry.FilterApproved)
	rejected := s.sys.ListPieces(registry.FilterRejected)

	if len(approved)+len(rejected) == 0 {
		pterm.Info.Println("No pieces registered yet.")
		return
	}

	pterm.DefaultSection.Printf("Approved (%d)", len(approved))
	if len(approved) > 0 {
		renderPieceTable(approved)
	}

	pterm.DefaultSection.Printf("Rejected (%d)", len(rejected))
	for _, p := range rejected {
		pterm.Printf("%s  %.1f g  %s  %.1f cm\n", p.ID, p.Weight, p.Color, p.Length)
		for _, reason := range p.Reasons {
			pterm.Printf("  %s %s\n", pterm.Gray("→"), reasonText(reason))
		}
	}
}

func (s *Shell) removePiece() {
	all := s.sys.ListPieces(registry.FilterAll)
	if len(all) == 0 {
		pterm.Info.Println("No pieces registered to remove.")
		return
	}

	for _, p := range all {
		pterm.Printf("  %s — %s\n", p.ID, verdictLabel(p.Approved))
	}

	id, ok := s.prompt("Piece ID to remove (empty to cancel): ")
	if !ok {
		return
	}
	id = strings.TrimSpace(id)
	if id == "" {
		pterm.Info.Println("Cancelled.")
		return
	}

	p, err := s.sys.RemovePiece(id)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			pterm.Error.Printf("No piece with ID %s\n", id)
		} else {
			pterm.Error.Println(err)
		}
		return
	}
	pterm.Success.Printf("Piece %s removed\n", p.ID)
}

func (s *Shell) listClosedBoxes() {
	closed := s.sys.ListBoxes(system.BoxesClosed)
	if len(closed) == 0 {
		pterm.Info.Println("No closed boxes yet.")
		return
	}

	pterm.Info.Printf("Closed boxes: %d\n", len(closed))
	for _, b := range closed {
		closedAt := ""
		if b.ClosedAt != nil {
			closedAt = b.ClosedAt.Format("2006-01-02 15:04:05")
		}
		pterm.DefaultSection.Printf("Box #%d — %d pieces (closed %s)", b.Number, len(b.PieceIDs), closedAt)
		for _, id := range b.PieceIDs {
			pterm.Printf("  %s %s\n", pterm.Gray("•"), id)
		}
	}
}

func (s *Shell) showOpenBox() {
	open := s.sys.ListBoxes(system.BoxesOpen)
	if len(open) == 0 {
		pterm.Info.Println("No open box — register an approved piece to start one.")
		return
	}
	b := open[0]
	pterm.Info.Printf("Box #%d — %d pieces\n", b.Number, len(b.PieceIDs))
	for _, id := range b.PieceIDs {
		pterm.Printf("  %s %s\n", pterm.Gray("•"), id)
	}
}

func (s *Shell) showReport() {
	snap := s.sys.Report()

	pterm.DefaultSection.Println("Summary")
	pterm.Printf("Pieces processed: %d\n", snap.TotalPieces)
	pterm.Printf("Approved: %d (%.1f%%)\n", snap.ApprovedCount, snap.ApprovedPct)
	pterm.Printf("Rejected: %d (%.1f%%)\n", snap.RejectedCount, snap.RejectedPct)

	if snap.RejectedCount > 0 {
		pterm.DefaultSection.Println("Rejection breakdown")
		for reason, count := range snap.Rejections {
			if count > 0 {
				pterm.Printf("  %s: %d\n", reasonText(reason), count)
			}
		}
	}

	pterm.DefaultSection.Println("Storage")
	pterm.Printf("Closed boxes: %d\n", snap.Storage.ClosedBoxes)
	if snap.Storage.OpenBoxes > 0 {
		pterm.Printf("Open box #%d: %d/%d pieces\n",
			snap.Storage.OpenBoxNumber, snap.Storage.OpenBoxFill, snap.Storage.Capacity)
	} else {
		pterm.Println("No open box.")
	}

	if snap.Quality != nil {
		q := snap.Quality
		pterm.DefaultSection.Println("Quality (approved pieces)")
		pterm.Printf("Weight: avg %.1f g (min %.1f, max %.1f)\n", q.AvgWeight, q.MinWeight, q.MaxWeight)
		pterm.Printf("Length: avg %.1f cm (min %.1f, max %.1f)\n", q.AvgLength, q.MinLength, q.MaxLength)
		for _, cc := range q.Colors {
			pterm.Printf("  %s: %d (%.1f%%)\n", cc.Color, cc.Count, cc.Pct)
		}
	}
}

func renderPieceTable(pieces []registry.Piece) {
	rows := pterm.TableData{{"ID", "Weight (g)", "Color", "Length (cm)"}}
	for _, p := range pieces {
		rows = append(rows, []string{
			p.ID,
			fmt.Sprintf("%.1f", p.Weight),
			p.Color,
			fmt.Sprintf("%.1f", p.Length),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render() //nolint:errcheck
}
