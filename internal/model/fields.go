package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKey names a scalar field of a Profile. The values double as the keys
// of the editable form.
type FieldKey string

const (
	FieldName        FieldKey = "name"
	FieldAppearance  FieldKey = "appearance"
	FieldBackground  FieldKey = "background"
	FieldPersonality FieldKey = "personality"
	FieldAttitude    FieldKey = "attitude"
	FieldGoal        FieldKey = "goal"
	FieldBenefit     FieldKey = "benefit"
	FieldSpecial     FieldKey = "special"

	FieldInfluenceSuccesses FieldKey = "influence_successes"
	FieldSuccessesNeeded    FieldKey = "successes_needed"
)

// TextFields lists the text fields in form order.
func TextFields() []FieldKey {
	return []FieldKey{
		FieldName, FieldAppearance, FieldBackground, FieldPersonality,
		FieldAttitude, FieldGoal, FieldBenefit, FieldSpecial,
	}
}

// PublicFields are the descriptive fields every audience may read.
func PublicFields() []FieldKey {
	return []FieldKey{FieldAppearance, FieldBackground, FieldPersonality}
}

// PrivilegedFields are the text fields only the operator may read.
func PrivilegedFields() []FieldKey {
	return []FieldKey{FieldAttitude, FieldGoal, FieldBenefit, FieldSpecial}
}

// CounterFields lists the integer fields.
func CounterFields() []FieldKey {
	return []FieldKey{FieldInfluenceSuccesses, FieldSuccessesNeeded}
}

// IsTextField reports whether k is one of TextFields.
func IsTextField(k FieldKey) bool {
	for _, f := range TextFields() {
		if f == k {
			return true
		}
	}
	return false
}

// IsCounterField reports whether k is one of CounterFields.
func IsCounterField(k FieldKey) bool {
	return k == FieldInfluenceSuccesses || k == FieldSuccessesNeeded
}

// Label returns the display label of a field.
func (k FieldKey) Label() string {
	switch k {
	case FieldInfluenceSuccesses:
		return "Influence Successes"
	case FieldSuccessesNeeded:
		return "Successes Needed"
	}
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Category names one of the four trait lists.
type Category string

const (
	Biases          Category = "biases"
	Strengths       Category = "strengths"
	Weaknesses      Category = "weaknesses"
	InfluenceSkills Category = "influence_skills"
)

// Categories lists the trait lists in display order.
func Categories() []Category {
	return []Category{Biases, Strengths, Weaknesses, InfluenceSkills}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Label returns the plural display label, e.g. "Influence Skills".
func (c Category) Label() string {
	switch c {
	case Biases:
		return "Biases"
	case Strengths:
		return "Strengths"
	case Weaknesses:
		return "Weaknesses"
	case InfluenceSkills:
		return "Influence Skills"
	}
	return string(c)
}

// Singular returns the label used on "Add ..." controls.
func (c Category) Singular() string {
	switch c {
	case Biases:
		return "Bias"
	case Strengths:
		return "Strength"
	case Weaknesses:
		return "Weakness"
	case InfluenceSkills:
		return "Influence Skill"
	}
	return strings.TrimSuffix(c.Label(), "s")
}

// ItemKey is the form key of the i-th item of category c.
func ItemKey(c Category, i int) string {
	return string(c) + "-" + strconv.Itoa(i)
}
