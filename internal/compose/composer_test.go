package compose

import (
	"reflect"
	"testing"

	"intake_gateway/internal/markup"
	"intake_gateway/internal/wizard/domain"
)

func TestComposeInquiryHidesServiceGroups(t *testing.T) {
	c := New()
	plan := c.Compose(domain.IntentInquiry, domain.CustomerTypeNone)

	for _, section := range []string{SectionItemSelection, SectionSpecification, SectionAddons} {
		if plan.Visible[section] {
			t.Errorf("section %s visible under inquiry intent", section)
		}
		if plan.Required[section] {
			t.Errorf("section %s required under inquiry intent", section)
		}
	}
	if !plan.Visible[SectionInquiry] {
		t.Error("inquiry section hidden under inquiry intent")
	}
	if len(plan.Order) != 0 {
		t.Errorf("expected no ordering for inquiry, got %v", plan.Order)
	}
}

func TestComposeServiceOrdering(t *testing.T) {
	c := New()
	want := []string{SectionItemSelection, SectionSpecification, SectionAddons}

	for _, intent := range []domain.Intent{domain.IntentService, domain.IntentSales} {
		plan := c.Compose(intent, domain.CustomerTypePersonal)
		if !reflect.DeepEqual(plan.Order, want) {
			t.Errorf("intent %s: order = %v, want %v", intent, plan.Order, want)
		}
		if plan.Visible[SectionInquiry] {
			t.Errorf("intent %s: inquiry section visible", intent)
		}
	}
}

func TestComposeIdempotent(t *testing.T) {
	c := New()
	first := c.Compose(domain.IntentService, domain.CustomerTypeCompany)
	second := c.Compose(domain.IntentService, domain.CustomerTypeCompany)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("plans differ across invocations:\n%+v\n%+v", first, second)
	}
	seen := map[string]int{}
	for _, s := range first.Order {
		seen[s]++
	}
	for s, n := range seen {
		if n != 1 {
			t.Errorf("section %s appears %d times in order", s, n)
		}
	}
}

func TestComposeCustomerTypeToggle(t *testing.T) {
	c := New()

	tests := []struct {
		name        string
		ct          domain.CustomerType
		personalReq bool
		orgReq      bool
	}{
		{"personal", domain.CustomerTypePersonal, true, false},
		{"company", domain.CustomerTypeCompany, false, true},
		{"government", domain.CustomerTypeGovernment, false, true},
		{"ngo", domain.CustomerTypeNGO, false, true},
		{"bodaboda", domain.CustomerTypeBodaboda, false, false},
		{"unset", domain.CustomerTypeNone, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan := c.Compose(domain.IntentService, tc.ct)
			if plan.Required[SectionPersonal] != tc.personalReq {
				t.Errorf("personal required = %v, want %v", plan.Required[SectionPersonal], tc.personalReq)
			}
			if plan.Required[SectionOrganization] != tc.orgReq {
				t.Errorf("organization required = %v, want %v", plan.Required[SectionOrganization], tc.orgReq)
			}
			if plan.Required[SectionTax] != tc.orgReq {
				t.Errorf("tax required = %v, want %v", plan.Required[SectionTax], tc.orgReq)
			}
			if tc.personalReq && tc.orgReq {
				t.Error("personal and organization blocks both required")
			}
		})
	}
}

func TestApplySetsRequiredOnForm(t *testing.T) {
	const page = `<form>
		<input type="hidden" name="step" value="2">
		<input type="radio" name="personal_type" value="individual">
		<input type="text" name="organization_name" required>
		<input type="text" name="tax_id" required>
	</form>`

	form, err := markup.Parse(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	c := New()
	plan := c.Compose(domain.IntentService, domain.CustomerTypePersonal)
	c.Apply(plan, form)

	for _, f := range form.Lookup("personal_type") {
		if !f.Required {
			t.Error("personal_type not marked required for personal customer")
		}
	}
	for _, name := range []string{"organization_name", "tax_id"} {
		for _, f := range form.Lookup(name) {
			if f.Required {
				t.Errorf("%s still required while hidden", name)
			}
		}
	}
}

func TestApplySkipsMissingFields(t *testing.T) {
	form, err := markup.Parse(`<form><input type="hidden" name="step" value="1"></form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	c := New()
	plan := c.Compose(domain.IntentInquiry, domain.CustomerTypeCompany)
	c.Apply(plan, form)

	if got := len(form.Fields); got != 1 {
		t.Errorf("apply grew the form: %d fields", got)
	}
}
