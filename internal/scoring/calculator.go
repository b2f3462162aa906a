// Package scoring converts raw exam marks into weighted contributions and a final score.
package scoring

import "math"

// Component identifies one assessed part of the final score.
type Component string

const (
	ComponentMidterm  Component = "midterm"
	ComponentEndterm  Component = "endterm"
	ComponentInternal Component = "internal"
)

// Components lists every scored component in entry order.
var Components = []Component{ComponentMidterm, ComponentEndterm, ComponentInternal}

type rule struct {
	maxMarks float64
	weight   float64
}

var rules = map[Component]rule{
	ComponentMidterm:  {maxMarks: 50, weight: 0.30},
	ComponentEndterm:  {maxMarks: 100, weight: 0.30},
	ComponentInternal: {maxMarks: 100, weight: 0.40},
}

// Contributions holds the weighted share of each component and their total, out of 100.
type Contributions struct {
	Midterm  float64 `json:"midterm_contribution"`
	Endterm  float64 `json:"endterm_contribution"`
	Internal float64 `json:"internal_contribution"`
	Final    float64 `json:"final_score"`
}

// MaxMarks returns the highest raw mark accepted for the component.
func MaxMarks(c Component) float64 {
	return rules[c].maxMarks
}

// Weight returns the component's share of the final score as a fraction.
func Weight(c Component) float64 {
	return rules[c].weight
}

// Cap returns the largest contribution the component can make to the final score.
func Cap(c Component) float64 {
	return Weight(c) * 100
}

// Normalize rescales a raw mark to a 0-100 basis.
func Normalize(c Component, raw float64) float64 {
	limit := MaxMarks(c)
	if limit == 0 {
		return 0
	}
	return (raw / limit) * 100
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return Unsigned(math.Round(v*100) / 100)
}

// Unsigned turns negative zero into zero and leaves every other value alone.
func Unsigned(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// Compute weights the three marks. Inputs are expected to be within range already.
func Compute(midterm, endterm, internal float64) Contributions {
	result := Contributions{
		Midterm:  contribution(ComponentMidterm, midterm),
		Endterm:  contribution(ComponentEndterm, endterm),
		Internal: contribution(ComponentInternal, internal),
	}
	// Summing the rounded parts keeps Final exactly equal to what is displayed.
	result.Final = Round2(result.Midterm + result.Endterm + result.Internal)
	return result
}

func contribution(c Component, raw float64) float64 {
	return Round2(Normalize(c, raw) * Weight(c))
}
