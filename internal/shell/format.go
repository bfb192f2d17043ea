package shell

import "github.com/qualityline/qualityline/internal/quality"

// reasonText renders a rejection reason for the operator.
func reasonText(r quality.Reason) string {
	switch r {
	case quality.ReasonWeightOutOfRange:
		return "weight out of range"
	case quality.ReasonInvalidColor:
		return "color not accepted"
	case quality.ReasonLengthOutOfRange:
		return "length out of range"
	default:
		return string(r)
	}
}

func verdictLabel(approved bool) string {
	if approved {
		return "APPROVED"
	}
	return "REJECTED"
}
