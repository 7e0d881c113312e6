// Package scenario applies hypothetical deltas to a cloned snapshot.
package scenario

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

// Scenario targets.
const (
	TargetIncome   = "income"
	TargetExpenses = "expenses"
	TargetCategory = "category"
)

// Scenario directions.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// Descriptor is a parsed what-if scenario.
type Descriptor struct {
	Target    string  `json:"target"`
	Category  string  `json:"category,omitempty"`
	Direction string  `json:"direction"`
	Amount    float64 `json:"amount"`  // absolute, 0 when Percent is set
	Percent   float64 `json:"percent"` // percent of the targeted field's current value
}

var (
	percentRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent|per cent)`)
	amountRegex  = regexp.MustCompile(`(?:₹|rs\.?\s*)?(\d+(?:,\d+)*(?:\.\d+)?)\s*(lakh|lakhs|crore|crores|thousand|k)?\b`)
)

// Numeric suffix multipliers used in Indian amount phrasing.
var suffixMultiplier = map[string]float64{
	"k":        1e3,
	"thousand": 1e3,
	"lakh":     1e5,
	"lakhs":    1e5,
	"crore":    1e7,
	"crores":   1e7,
}

var increaseWords = []string{"increase", "increases", "raise", "rise", "rises", "gain", "more", "extra", "add", "double", "grow"}
var decreaseWords = []string{"decrease", "decreases", "reduce", "cut", "drop", "drops", "lose", "less", "fall", "falls", "save"}

// Parse extracts a scenario descriptor from free text. The snapshot supplies
// the known category names so "what if I cut food by 20%" resolves to that
// category rather than total expenses.
func Parse(text string, s *models.Snapshot) (*Descriptor, error) {
	lower := strings.ToLower(text)

	d := &Descriptor{}

	switch {
	case matchCategory(lower, s) != "":
		d.Target = TargetCategory
		d.Category = matchCategory(lower, s)
	case anyWord(lower, "income", "salary", "earn", "earning", "pay"):
		d.Target = TargetIncome
	case anyWord(lower, "expense", "expenses", "spending", "spend", "cost", "costs"):
		d.Target = TargetExpenses
	default:
		return nil, fmt.Errorf("no target recognized")
	}

	switch {
	case anyWord(lower, increaseWords...):
		d.Direction = DirectionIncrease
	case anyWord(lower, decreaseWords...):
		d.Direction = DirectionDecrease
	default:
		return nil, fmt.Errorf("no direction recognized")
	}

	if m := percentRegex.FindStringSubmatch(lower); m != nil {
		d.Percent, _ = strconv.ParseFloat(m[1], 64)
		if d.Percent <= 0 {
			return nil, fmt.Errorf("percentage must be positive")
		}
		return d, nil
	}

	amount := ParseAmount(lower)
	if amount <= 0 {
		return nil, fmt.Errorf("no amount recognized")
	}
	d.Amount = amount
	return d, nil
}

// ParseAmount reads the first monetary amount in the text, honouring the
// k/thousand/lakh/crore suffixes. Returns 0 when nothing parses.
func ParseAmount(text string) float64 {
	m := amountRegex.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	if mult, ok := suffixMultiplier[m[2]]; ok {
		value *= mult
	}
	return value
}

func matchCategory(text string, s *models.Snapshot) string {
	if s == nil {
		return ""
	}
	for name := range s.FlexibleByCat {
		if name != "" && strings.Contains(text, strings.ToLower(name)) {
			return name
		}
	}
	for _, cat := range s.TopCategories {
		if cat.Name != "" && strings.Contains(text, strings.ToLower(cat.Name)) {
			return cat.Name
		}
	}
	return ""
}

func anyWord(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
