package markup

import "testing"

const stepThreeMarkup = `
<form id="customerRegistrationForm">
  <input type="hidden" name="step" id="currentStep" value="3">
  <input type="hidden" name="save_only" id="saveOnly" value="0">
  <input type="checkbox" name="service_selection" value="5" data-minutes="30">
  <input type="checkbox" name="service_selection" value="7" data-minutes="45" checked>
  <input type="checkbox" name="tire_services" value="2" data-minutes="brittle">
  <select name="item_name" id="id_item_name" data-items='{"Michelin 195/65": {"brand": "Michelin"}}'>
    <option value="">---------</option>
    <option value="Michelin 195/65" selected>Michelin 195/65</option>
  </select>
  <input type="text" name="brand" id="id_brand" value="">
  <input type="text" name="quantity" class="form-control is-invalid" value="-1">
  <textarea name="description">worn front pair</textarea>
</form>`

func TestParseDeclaredStep(t *testing.T) {
	form, err := Parse(stepThreeMarkup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if form.Step != 3 {
		t.Errorf("declared step = %d, want 3", form.Step)
	}
}

func TestParseNoDeclaredStep(t *testing.T) {
	form, err := Parse(`<form><input type="text" name="phone"></form>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if form.Step != 0 {
		t.Errorf("declared step = %d, want 0", form.Step)
	}
}

func TestParseDurationWeights(t *testing.T) {
	form, err := Parse(stepThreeMarkup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	services := form.Lookup("service_selection")
	if len(services) != 2 {
		t.Fatalf("expected 2 service checkboxes, got %d", len(services))
	}
	if services[0].DurationMinutes != 30 || services[0].Checked {
		t.Errorf("first service: minutes=%d checked=%v, want 30/false", services[0].DurationMinutes, services[0].Checked)
	}
	if services[1].DurationMinutes != 45 || !services[1].Checked {
		t.Errorf("second service: minutes=%d checked=%v, want 45/true", services[1].DurationMinutes, services[1].Checked)
	}

	// Malformed data-minutes is 0, never NaN-like or negative.
	tires := form.Lookup("tire_services")
	if len(tires) != 1 || tires[0].DurationMinutes != 0 {
		t.Errorf("malformed data-minutes should parse to 0, got %+v", tires)
	}
}

func TestParseItemBrandMap(t *testing.T) {
	form, err := Parse(stepThreeMarkup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := form.ItemBrandMap["Michelin 195/65"]; got != "Michelin" {
		t.Errorf("ItemBrandMap = %q, want Michelin", got)
	}
}

func TestParseItemBrandMapFlatShape(t *testing.T) {
	form, err := Parse(`<select name="item_name" data-brands="ignored" data-items='{"Pirelli P1": "Pirelli"}'></select>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := form.ItemBrandMap["Pirelli P1"]; got != "Pirelli" {
		t.Errorf("ItemBrandMap = %q, want Pirelli", got)
	}
}

func TestSelectValueTakesSelectedOption(t *testing.T) {
	form, err := Parse(stepThreeMarkup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	items := form.Lookup("item_name")
	if len(items) != 1 || items[0].Value != "Michelin 195/65" {
		t.Errorf("select value = %+v, want Michelin 195/65", items)
	}
}

func TestInvalidFields(t *testing.T) {
	form, err := Parse(stepThreeMarkup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	invalid := form.InvalidFields()
	if len(invalid) != 1 || invalid[0] != "quantity" {
		t.Errorf("InvalidFields = %v, want [quantity]", invalid)
	}
}

func TestSetValueAndValues(t *testing.T) {
	form, err := Parse(stepThreeMarkup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !form.SetValue("brand", "Michelin") {
		t.Fatal("SetValue(brand) did not match any field")
	}
	if form.SetValue("no_such_field", "x") {
		t.Error("SetValue on a missing field should report false")
	}

	values := form.Values()
	if got := values.Get("brand"); got != "Michelin" {
		t.Errorf("submitted brand = %q, want Michelin", got)
	}
	if got := values.Get("step"); got != "3" {
		t.Errorf("submitted step = %q, want 3", got)
	}
	// Only the checked checkbox is submitted.
	if got := values["service_selection"]; len(got) != 1 || got[0] != "7" {
		t.Errorf("submitted service_selection = %v, want [7]", got)
	}
}

func TestSetCheckedRadioGroupExclusive(t *testing.T) {
	form, err := Parse(`
	  <input type="radio" name="intent" value="service" checked>
	  <input type="radio" name="intent" value="sales">
	  <input type="radio" name="intent" value="inquiry">`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !form.SetChecked("intent", "sales", true) {
		t.Fatal("SetChecked did not match the sales radio")
	}

	var checked []string
	for _, field := range form.Lookup("intent") {
		if field.Checked {
			checked = append(checked, field.Value)
		}
	}
	if len(checked) != 1 || checked[0] != "sales" {
		t.Errorf("checked radios = %v, want [sales]", checked)
	}
}

func TestSetCheckedSetReplacesGroup(t *testing.T) {
	const page = `<form>
		<input type="checkbox" name="service_selection" value="1" checked>
		<input type="checkbox" name="service_selection" value="2">
		<input type="checkbox" name="service_selection" value="3" checked>
	</form>`

	form, err := Parse(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !form.SetCheckedSet("service_selection", []string{"2", "3"}) {
		t.Fatal("group not found")
	}

	var checked []string
	for _, f := range form.Lookup("service_selection") {
		if f.Checked {
			checked = append(checked, f.Value)
		}
	}
	if len(checked) != 2 || checked[0] != "2" || checked[1] != "3" {
		t.Errorf("checked = %v, want [2 3]", checked)
	}

	if form.SetCheckedSet("absent", []string{"1"}) {
		t.Error("reported a match for a missing group")
	}
}
