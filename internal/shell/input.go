package shell

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInputInvalid marks raw operator input the shell refused to pass on to
// the core: non-numeric measurements, non-positive values, empty fields.
var ErrInputInvalid = errors.New("invalid input")

// parsePositiveFloat parses s as a strictly positive number.
// This is shell-side validation — the evaluator never sees unparseable input.
func parsePositiveFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInputInvalid, "value is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInputInvalid, "%q is not a number", s)
	}
	if v <= 0 {
		return 0, errors.Wrapf(ErrInputInvalid, "%v must be positive", v)
	}
	return v, nil
}

// parseColor trims and rejects empty color input. Normalization and
// validity against the accepted set are the evaluator's job.
func parseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.Wrap(ErrInputInvalid, "color is empty")
	}
	return s, nil
}
