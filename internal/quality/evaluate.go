package quality

import "strings"

// Reason identifies one violated acceptance criterion.
type Reason string

// Reason constants returned by Evaluate.
const (
	ReasonWeightOutOfRange Reason = "weight_out_of_range"
	ReasonInvalidColor     Reason = "invalid_color"
	ReasonLengthOutOfRange Reason = "length_out_of_range"
)

// AllReasons lists every reason category, in report order.
var AllReasons = []Reason{
	ReasonWeightOutOfRange,
	ReasonInvalidColor,
	ReasonLengthOutOfRange,
}

// Criteria holds the acceptance thresholds a piece is evaluated against.
// Bounds are inclusive on both ends.
type Criteria struct {
	// MinWeight and MaxWeight bound the acceptable weight in grams.
	MinWeight float64
	MaxWeight float64

	// MinLength and MaxLength bound the acceptable length in centimeters.
	MinLength float64
	MaxLength float64

	// Colors is the set of accepted color names, lowercase.
	Colors []string

	// ColorAliases maps alternative spellings to canonical color names,
	// e.g. "azul" -> "blue". Applied before the Colors membership check.
	ColorAliases map[string]string
}

// DefaultCriteria returns the factory acceptance thresholds:
// weight 95–105 g, length 10–20 cm, colors blue or green (with the
// Portuguese spellings accepted as aliases).
func DefaultCriteria() Criteria {
	return Criteria{
		MinWeight: 95,
		MaxWeight: 105,
		MinLength: 10,
		MaxLength: 20,
		Colors:    []string{"blue", "green"},
		ColorAliases: map[string]string{
			"azul":  "blue",
			"verde": "green",
		},
	}
}

// Result is the outcome of evaluating one piece.
type Result struct {
	// Approved is true iff Reasons is empty.
	Approved bool

	// Reasons lists every violated criterion, in check order
	// (weight, color, length). Violations are collected, not short-circuited.
	Reasons []Reason

	// Color is the canonical color after alias normalization and lowercasing.
	// Set even when the color is invalid, so the rejected piece records what
	// the operator entered.
	Color string
}

// Normalize lowercases color and resolves it through the alias map.
func (c Criteria) Normalize(color string) string {
	color = strings.ToLower(strings.TrimSpace(color))
	if canonical, ok := c.ColorAliases[color]; ok {
		return canonical
	}
	return color
}

// Evaluate checks weight, color, and length against the criteria and returns
// the verdict with every violated criterion. Each rule is checked
// independently so a piece failing all three reports all three reasons.
func Evaluate(c Criteria, weight float64, color string, length float64) Result {
	res := Result{Color: c.Normalize(color)}

	if weight < c.MinWeight || weight > c.MaxWeight {
		res.Reasons = append(res.Reasons, ReasonWeightOutOfRange)
	}

	valid := false
	for _, accepted := range c.Colors {
		if res.Color == accepted {
			valid = true
			break
		}
	}
	if !valid {
		res.Reasons = append(res.Reasons, ReasonInvalidColor)
	}

	if length < c.MinLength || length > c.MaxLength {
		res.Reasons = append(res.Reasons, ReasonLengthOutOfRange)
	}

	res.Approved = len(res.Reasons) == 0
	return res
}
