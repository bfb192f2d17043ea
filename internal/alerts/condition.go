package alerts

import (
	"strconv"
	"strings"

	"github.com/qualityline/qualityline/internal/quality"
	"github.com/qualityline/qualityline/internal/report"
)

// evalCondition evaluates a rule condition string against a report snapshot.
//
// Supported expressions (field operator value):
//
//	rejected_pct > 20
//	approved_pct < 80
//	total_pieces >= 100
//	weight_rejections >= 5
//	color_rejections >= 5
//	length_rejections >= 5
//	closed_boxes >= 10
//	open_fill == 9
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, snap report.Snapshot) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	v, ok := numericField(field, snap)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField resolves a condition field name to its snapshot value.
func numericField(field string, snap report.Snapshot) (float64, bool) {
	switch field {
	case "total_pieces":
		return float64(snap.TotalPieces), true
	case "approved_count":
		return float64(snap.ApprovedCount), true
	case "rejected_count":
		return float64(snap.RejectedCount), true
	case "approved_pct":
		return snap.ApprovedPct, true
	case "rejected_pct":
		return snap.RejectedPct, true
	case "weight_rejections":
		return float64(snap.Rejections[quality.ReasonWeightOutOfRange]), true
	case "color_rejections":
		return float64(snap.Rejections[quality.ReasonInvalidColor]), true
	case "length_rejections":
		return float64(snap.Rejections[quality.ReasonLengthOutOfRange]), true
	case "closed_boxes":
		return float64(snap.Storage.ClosedBoxes), true
	case "open_fill":
		return float64(snap.Storage.OpenBoxFill), true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
