package domain

import "testing"

func TestParseIntentSynonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want Intent
	}{
		{"service", IntentService},
		{"sales", IntentSales},
		{"sale", IntentSales},
		{"purchase", IntentSales},
		{"inquiry", IntentInquiry},
		{"inquiries", IntentInquiry},
		{"consultation", IntentInquiry},
		{"  Service  ", IntentService},
		{"", IntentNone},
	}

	for _, tc := range tests {
		got, err := ParseIntent(tc.raw)
		if err != nil {
			t.Errorf("ParseIntent(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseIntent(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	if _, err := ParseIntent("demolition"); err == nil {
		t.Error("expected error for unknown intent")
	}
}

func TestParseCustomerType(t *testing.T) {
	for raw, want := range map[string]CustomerType{
		"personal":   CustomerTypePersonal,
		"COMPANY":    CustomerTypeCompany,
		"government": CustomerTypeGovernment,
		"ngo":        CustomerTypeNGO,
		"bodaboda":   CustomerTypeBodaboda,
		"":           CustomerTypeNone,
	} {
		got, err := ParseCustomerType(raw)
		if err != nil {
			t.Errorf("ParseCustomerType(%q): %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParseCustomerType(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseCustomerType("alien"); err == nil {
		t.Error("expected error for unknown customer type")
	}
}

func TestIsOrganization(t *testing.T) {
	for _, ct := range []CustomerType{CustomerTypeCompany, CustomerTypeGovernment, CustomerTypeNGO} {
		if !ct.IsOrganization() {
			t.Errorf("%q should be an organization", ct)
		}
	}
	for _, ct := range []CustomerType{CustomerTypePersonal, CustomerTypeBodaboda, CustomerTypeNone} {
		if ct.IsOrganization() {
			t.Errorf("%q should not be an organization", ct)
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		step    int
		percent int
	}{
		{1, 25},
		{2, 50},
		{3, 75},
		{4, 100},
		{0, 25},  // invalid steps fall back to the first
		{99, 25},
	}

	for _, tc := range tests {
		s := Session{CurrentStep: tc.step}
		got := s.Progress()
		if got.Percent != tc.percent || got.Total != LastStep {
			t.Errorf("Progress(step=%d) = %+v, want %d%%", tc.step, got, tc.percent)
		}
	}
}

func TestNextOfCapsAtLastStep(t *testing.T) {
	for step, want := range map[int]int{1: 2, 2: 3, 3: 4, 4: 4, 7: 4} {
		if got := NextOf(step); got != want {
			t.Errorf("NextOf(%d) = %d, want %d", step, got, want)
		}
	}
}

func TestBindLedgerIsOneShot(t *testing.T) {
	var s Session

	if !s.Bind("next-button") {
		t.Fatal("first bind reported already bound")
	}
	if s.Bind("next-button") {
		t.Fatal("second bind did not report already bound")
	}

	s.ResetBindings()
	if !s.Bind("next-button") {
		t.Error("bind after reset reported already bound")
	}
}

func TestOverrides(t *testing.T) {
	var s Session

	s.SetFieldValue("brand", "Toyota")
	s.SetCheckedValues("intent", []string{"service"})
	if s.FieldValues["brand"] != "Toyota" || len(s.CheckedValues["intent"]) != 1 {
		t.Fatalf("overrides = %v %v", s.FieldValues, s.CheckedValues)
	}

	s.ClearOverrides()
	if s.FieldValues != nil || s.CheckedValues != nil {
		t.Error("overrides survived a repaint")
	}
}
