package transport

import (
	"testing"

	"intake_gateway/internal/wizard/domain"
)

func TestToActionVariants(t *testing.T) {
	tests := []struct {
		name string
		req  ActionRequest
		want string
	}{
		{"next", ActionRequest{Action: "next_step"}, "next_step"},
		{"prev", ActionRequest{Action: "prev_step"}, "prev_step"},
		{"submit", ActionRequest{Action: "submit"}, "submit"},
		{"save", ActionRequest{Action: "save"}, "save"},
		{"intent", ActionRequest{Action: "select_intent", Value: "purchase"}, "select_intent"},
		{"customer type", ActionRequest{Action: "select_customer_type", Value: "company"}, "select_customer_type"},
		{"toggle", ActionRequest{Action: "toggle_service", Group: "service", ID: "1", Checked: true}, "toggle_service"},
		{"set field", ActionRequest{Action: "set_field", Name: "phone", Value: "0712"}, "set_field"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, err := tc.req.ToAction()
			if err != nil {
				t.Fatalf("ToAction: %v", err)
			}
			if action.ActionName() != tc.want {
				t.Errorf("action = %q, want %q", action.ActionName(), tc.want)
			}
		})
	}
}

func TestToActionIntentSynonym(t *testing.T) {
	action, err := ActionRequest{Action: "select_intent", Value: "consultation"}.ToAction()
	if err != nil {
		t.Fatalf("ToAction: %v", err)
	}
	si, ok := action.(domain.SelectIntent)
	if !ok || si.Value != domain.IntentInquiry {
		t.Errorf("action = %#v, want inquiry intent", action)
	}
}

func TestToActionRejectsIncomplete(t *testing.T) {
	reqs := []ActionRequest{
		{Action: "toggle_service", ID: "1"},
		{Action: "toggle_service", Group: "service"},
		{Action: "set_field", Value: "x"},
		{Action: "select_intent", Value: "demolition"},
		{Action: "teleport"},
	}
	for _, req := range reqs {
		if _, err := req.ToAction(); err == nil {
			t.Errorf("ToAction(%+v) succeeded, want error", req)
		}
	}
}
