// Package compose decides which field groups are visible and required for a
// given intent and customer type, and fixes the visual ordering of the
// service/sales layout. The mapping is deterministic and pure; applying it
// twice produces the same plan and never duplicates a section.
package compose

import (
	"intake_gateway/internal/markup"
	"intake_gateway/internal/wizard/domain"
)

// Section identifiers. These match the field-group blocks of the upstream
// markup, not individual fields.
const (
	SectionItemSelection = "item_selection"
	SectionSpecification = "specification"
	SectionAddons        = "addons"
	SectionInquiry       = "inquiry"
	SectionPersonal      = "personal"
	SectionOrganization  = "organization"
	SectionTax           = "tax"
)

// sectionFields maps each section to the field names that belong to it.
// Used when re-applying a plan onto a freshly painted form document.
var sectionFields = map[string][]string{
	SectionItemSelection: {"item_name", "brand"},
	SectionSpecification: {"quantity", "tire_type", "condition", "description"},
	SectionAddons:        {"service_selection", "tire_services"},
	SectionInquiry:       {"inquiry_type", "questions", "contact_preference", "follow_up_date"},
	SectionPersonal:      {"personal_type"},
	SectionOrganization:  {"organization_name"},
	SectionTax:           {"tax_id"},
}

// Plan is the composed layout decision for one (intent, customerType) pair.
type Plan struct {
	// Visible and Required are keyed by section identifier. A section
	// absent from the maps is untouched.
	Visible  map[string]bool `json:"visible"`
	Required map[string]bool `json:"required"`
	// Order is the canonical section ordering for the service/sales
	// layout. Empty for inquiry, where no reordering happens.
	Order []string `json:"order,omitempty"`
}

// Composer maps wizard state to section plans. Constructed once per wizard
// instance and injected into the controller.
type Composer struct{}

// New creates a Composer.
func New() *Composer {
	return &Composer{}
}

// Compose builds the plan for the given intent and customer type.
//
// Exactly one of {personal, organization+tax, none} is visible and required
// at a time; the losing block is explicitly unrequired so it can never block
// submission from behind a hidden section.
func (c *Composer) Compose(intent domain.Intent, customerType domain.CustomerType) Plan {
	plan := Plan{
		Visible:  map[string]bool{},
		Required: map[string]bool{},
	}

	switch intent {
	case domain.IntentInquiry:
		plan.Visible[SectionItemSelection] = false
		plan.Visible[SectionSpecification] = false
		plan.Visible[SectionAddons] = false
		plan.Visible[SectionInquiry] = true
		plan.Required[SectionItemSelection] = false
		plan.Required[SectionSpecification] = false
		plan.Required[SectionAddons] = false
	case domain.IntentService, domain.IntentSales:
		plan.Visible[SectionItemSelection] = true
		plan.Visible[SectionSpecification] = true
		plan.Visible[SectionAddons] = true
		plan.Visible[SectionInquiry] = false
		plan.Required[SectionInquiry] = false
		plan.Order = []string{SectionItemSelection, SectionSpecification, SectionAddons}
	}

	switch {
	case customerType == domain.CustomerTypePersonal:
		plan.Visible[SectionPersonal] = true
		plan.Required[SectionPersonal] = true
		plan.Visible[SectionOrganization] = false
		plan.Visible[SectionTax] = false
		plan.Required[SectionOrganization] = false
		plan.Required[SectionTax] = false
	case customerType.IsOrganization():
		plan.Visible[SectionOrganization] = true
		plan.Visible[SectionTax] = true
		plan.Required[SectionOrganization] = true
		plan.Required[SectionTax] = true
		plan.Visible[SectionPersonal] = false
		plan.Required[SectionPersonal] = false
	case customerType == domain.CustomerTypeBodaboda, customerType == domain.CustomerTypeNone:
		plan.Visible[SectionPersonal] = false
		plan.Visible[SectionOrganization] = false
		plan.Visible[SectionTax] = false
		plan.Required[SectionPersonal] = false
		plan.Required[SectionOrganization] = false
		plan.Required[SectionTax] = false
	}

	return plan
}

// Apply re-applies a plan onto a freshly painted form document, setting the
// required flag of every field in every section the plan decides. Fields the
// new step does not carry are skipped silently.
func (c *Composer) Apply(plan Plan, form *markup.Form) {
	for section, required := range plan.Required {
		for _, name := range sectionFields[section] {
			if !form.Has(name) {
				continue
			}
			for _, pos := range fieldPositions(form, name) {
				form.Fields[pos].Required = required
			}
		}
	}
}

func fieldPositions(form *markup.Form, name string) []int {
	var out []int
	for i, field := range form.Fields {
		if field.Name == name {
			out = append(out, i)
		}
	}
	return out
}
