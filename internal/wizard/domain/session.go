// Package domain holds the wizard's core types: the per-instance session,
// the intent and customer-type enums, and the tagged action variants the
// controller dispatches on.
package domain

import (
	"math"
	"strings"

	"intake_gateway/platform/apperr"
)

// Wizard step bounds. The upstream wizard has four screens: identity,
// intent, items/services, review.
const (
	FirstStep = 1
	LastStep  = 4
)

// ValidStep reports whether step is one of the declared wizard steps.
func ValidStep(step int) bool {
	return step >= FirstStep && step <= LastStep
}

// NextOf returns the step after the given one, capped at the last step.
func NextOf(step int) int {
	if step >= LastStep {
		return LastStep
	}
	return step + 1
}

// Intent is the user's declared purpose for the interaction. It drives which
// field groups the section composer shows.
type Intent string

const (
	IntentNone    Intent = ""
	IntentService Intent = "service"
	IntentSales   Intent = "sales"
	IntentInquiry Intent = "inquiry"
)

// ParseIntent canonicalizes the intent synonyms the upstream markup has used
// over time.
func ParseIntent(raw string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "service":
		return IntentService, nil
	case "sales", "sale", "purchase":
		return IntentSales, nil
	case "inquiry", "inquiries", "consultation":
		return IntentInquiry, nil
	case "":
		return IntentNone, nil
	default:
		return IntentNone, apperr.Validation("unknown intent: " + raw)
	}
}

// CustomerType drives the personal/organization visibility split.
type CustomerType string

const (
	CustomerTypeNone       CustomerType = ""
	CustomerTypePersonal   CustomerType = "personal"
	CustomerTypeCompany    CustomerType = "company"
	CustomerTypeGovernment CustomerType = "government"
	CustomerTypeNGO        CustomerType = "ngo"
	CustomerTypeBodaboda   CustomerType = "bodaboda"
)

// ParseCustomerType validates a raw customer type value.
func ParseCustomerType(raw string) (CustomerType, error) {
	switch CustomerType(strings.ToLower(strings.TrimSpace(raw))) {
	case CustomerTypePersonal, CustomerTypeCompany, CustomerTypeGovernment,
		CustomerTypeNGO, CustomerTypeBodaboda:
		return CustomerType(strings.ToLower(strings.TrimSpace(raw))), nil
	case CustomerTypeNone:
		return CustomerTypeNone, nil
	default:
		return CustomerTypeNone, apperr.Validation("unknown customer type: " + raw)
	}
}

// IsOrganization reports whether the type uses the organization+tax block.
func (t CustomerType) IsOrganization() bool {
	switch t {
	case CustomerTypeCompany, CustomerTypeGovernment, CustomerTypeNGO:
		return true
	default:
		return false
	}
}

// Session is the per-wizard-instance state the gateway owns. The upstream
// owns everything else: markup, validation, persistence.
type Session struct {
	ID           string       `json:"id"`
	CurrentStep  int          `json:"currentStep"`
	Intent       Intent       `json:"intent"`
	CustomerType CustomerType `json:"customerType"`
	// SaveOnly is true only during the single request triggered by an
	// explicit save action and is reset afterward.
	SaveOnly bool `json:"saveOnly"`
	// Seq increments on every completed mutation. A response carrying a
	// stale sequence is discarded (a newer operation superseded it).
	Seq uint64 `json:"seq"`
	// FormHTML is the markup of the currently painted step.
	FormHTML string `json:"formHtml"`
	// FieldValues holds value writes applied on top of the painted markup.
	// Cleared on every repaint.
	FieldValues map[string]string `json:"fieldValues,omitempty"`
	// CheckedValues replaces the checked set of a checkbox or radio group,
	// keyed by field name. Cleared on every repaint.
	CheckedValues map[string][]string `json:"checkedValues,omitempty"`
	// BoundControls is the one-shot binding ledger for the current paint.
	// Rebuilt from scratch on every repaint; a control identifier present
	// here is already attached and must not be bound twice.
	BoundControls []string `json:"boundControls"`
}

// Progress is the read-model for the front-end progress bar.
type Progress struct {
	Step    int `json:"step"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Progress derives the progress read-model from the current step.
func (s *Session) Progress() Progress {
	step := s.CurrentStep
	if !ValidStep(step) {
		step = FirstStep
	}
	return Progress{
		Step:    step,
		Total:   LastStep,
		Percent: int(math.Round(float64(step) / float64(LastStep) * 100)),
	}
}

// Bind records a control identifier in the binding ledger. It reports false
// when the control was already bound, so callers never double-attach.
func (s *Session) Bind(controlID string) bool {
	for _, bound := range s.BoundControls {
		if bound == controlID {
			return false
		}
	}
	s.BoundControls = append(s.BoundControls, controlID)
	return true
}

// ResetBindings clears the binding ledger. Called on every repaint before
// controls are re-bound.
func (s *Session) ResetBindings() {
	s.BoundControls = s.BoundControls[:0]
}

// SetFieldValue records a value write on top of the painted markup.
func (s *Session) SetFieldValue(name, value string) {
	if s.FieldValues == nil {
		s.FieldValues = map[string]string{}
	}
	s.FieldValues[name] = value
}

// SetCheckedValues replaces the checked set of a checkbox or radio group.
func (s *Session) SetCheckedValues(name string, values []string) {
	if s.CheckedValues == nil {
		s.CheckedValues = map[string][]string{}
	}
	s.CheckedValues[name] = values
}

// ClearOverrides drops all field writes and checked-set replacements.
// Called on every repaint, when fresh markup becomes the new baseline.
func (s *Session) ClearOverrides() {
	s.FieldValues = nil
	s.CheckedValues = nil
}
