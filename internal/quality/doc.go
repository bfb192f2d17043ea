// Package quality implements the piece acceptance rules. It maps raw
// measurements (weight, color, length) to a pass/fail verdict plus the list
// of criteria the piece violated. Evaluation is a pure function over an
// explicit Criteria value — no state is read or mutated.
package quality
