// Package markup parses wizard step markup supplied by the tracker backend
// into a form document the wizard engine can work with. The backend owns the
// markup; this package only reads what the engine needs: the declared step
// value, the fields and their state, checkbox duration weights, inline
// validation markers, and data-attribute mappings.
package markup

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Field kinds. Selects and textareas are folded into the same model as
// inputs; the engine only cares about name, value, and checked state.
const (
	KindText     = "text"
	KindHidden   = "hidden"
	KindRadio    = "radio"
	KindCheckbox = "checkbox"
	KindSelect   = "select"
	KindTextarea = "textarea"
)

// Field is one named control in the step markup.
type Field struct {
	Name            string
	ID              string
	Kind            string
	Value           string
	Checked         bool
	Required        bool
	DurationMinutes int // from data-minutes; 0 when absent or malformed
	Invalid         bool
}

// Form is the parsed form document for one wizard step.
type Form struct {
	// Step is the step value the markup declares (input named "step").
	// Zero when the markup declares none.
	Step int
	// Fields in document order. Radio/checkbox groups repeat the name.
	Fields []Field
	// ItemBrandMap is the item->brand autofill mapping carried on the
	// item-name control's data-items attribute.
	ItemBrandMap map[string]string

	index map[string][]int // name -> positions in Fields
}

// Parse builds a Form from step markup. Parsing is tolerant: x/net/html
// repairs broken fragments, and anything unrecognized is skipped.
func Parse(markup string) (*Form, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	f := &Form{
		ItemBrandMap: map[string]string{},
		index:        map[string][]int{},
	}
	f.walk(root)

	if raw := f.lookupValue("step"); raw != "" {
		if step, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			f.Step = step
		}
	}

	return f, nil
}

func (f *Form) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "input":
			f.addInput(n)
		case "select":
			f.addSelect(n)
		case "textarea":
			f.addTextarea(n)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.walk(c)
	}
}

func (f *Form) addInput(n *html.Node) {
	name := attr(n, "name")
	if name == "" {
		return
	}

	kind := attr(n, "type")
	if kind == "" {
		kind = KindText
	}

	field := Field{
		Name:     name,
		ID:       attr(n, "id"),
		Kind:     kind,
		Value:    attr(n, "value"),
		Checked:  hasAttr(n, "checked"),
		Required: hasAttr(n, "required"),
		Invalid:  hasClass(n, "is-invalid"),
	}

	if kind == KindCheckbox {
		field.DurationMinutes = parseMinutes(attr(n, "data-minutes"))
	}

	f.append(field)
}

func (f *Form) addSelect(n *html.Node) {
	name := attr(n, "name")
	if name == "" {
		return
	}

	field := Field{
		Name:     name,
		ID:       attr(n, "id"),
		Kind:     KindSelect,
		Value:    selectedOption(n),
		Required: hasAttr(n, "required"),
		Invalid:  hasClass(n, "is-invalid"),
	}
	f.append(field)

	if raw := attr(n, "data-items"); raw != "" {
		f.mergeItemBrands(raw)
	}
}

func (f *Form) addTextarea(n *html.Node) {
	name := attr(n, "name")
	if name == "" {
		return
	}

	f.append(Field{
		Name:     name,
		ID:       attr(n, "id"),
		Kind:     KindTextarea,
		Value:    textContent(n),
		Required: hasAttr(n, "required"),
		Invalid:  hasClass(n, "is-invalid"),
	})
}

func (f *Form) append(field Field) {
	f.index[field.Name] = append(f.index[field.Name], len(f.Fields))
	f.Fields = append(f.Fields, field)
}

// mergeItemBrands accepts both shapes the backend has used for the autofill
// mapping: {"item": "Brand"} and {"item": {"brand": "Brand"}}.
func (f *Form) mergeItemBrands(raw string) {
	var nested map[string]struct {
		Brand string `json:"brand"`
	}
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		for item, v := range nested {
			if v.Brand != "" {
				f.ItemBrandMap[item] = v.Brand
			}
		}
		return
	}

	var flat map[string]string
	if err := json.Unmarshal([]byte(raw), &flat); err == nil {
		for item, brand := range flat {
			if brand != "" {
				f.ItemBrandMap[item] = brand
			}
		}
	}
}

// Lookup returns all fields with the given name, in document order.
func (f *Form) Lookup(name string) []Field {
	positions := f.index[name]
	out := make([]Field, 0, len(positions))
	for _, p := range positions {
		out = append(out, f.Fields[p])
	}
	return out
}

// Has reports whether any field with the given name exists.
func (f *Form) Has(name string) bool {
	return len(f.index[name]) > 0
}

// SetValue writes a value into every field with the given name and reports
// whether any field matched.
func (f *Form) SetValue(name, value string) bool {
	positions := f.index[name]
	for _, p := range positions {
		f.Fields[p].Value = value
	}
	return len(positions) > 0
}

// SetChecked toggles the checkbox or radio with the given name and value.
// For radios, checking one unchecks its group.
func (f *Form) SetChecked(name, value string, checked bool) bool {
	matched := false
	for _, p := range f.index[name] {
		field := &f.Fields[p]
		switch field.Kind {
		case KindCheckbox:
			if field.Value == value || value == "" {
				field.Checked = checked
				matched = true
			}
		case KindRadio:
			if field.Value == value {
				field.Checked = checked
				matched = true
			} else if checked {
				field.Checked = false
			}
		}
	}
	return matched
}

// SetCheckedSet makes exactly the given values checked within a checkbox or
// radio group, unchecking every other member. It reports whether the group
// exists.
func (f *Form) SetCheckedSet(name string, values []string) bool {
	positions := f.index[name]
	matched := false
	for _, p := range positions {
		field := &f.Fields[p]
		if field.Kind != KindCheckbox && field.Kind != KindRadio {
			continue
		}
		matched = true
		field.Checked = false
		for _, v := range values {
			if field.Value == v {
				field.Checked = true
			}
		}
	}
	return matched
}

// Values flattens the document into submittable form data: every value-bearing
// field plus only the checked members of checkbox/radio groups.
func (f *Form) Values() url.Values {
	out := url.Values{}
	for _, field := range f.Fields {
		switch field.Kind {
		case KindCheckbox, KindRadio:
			if !field.Checked {
				continue
			}
			value := field.Value
			if value == "" {
				value = "on"
			}
			out.Add(field.Name, value)
		default:
			out.Add(field.Name, field.Value)
		}
	}
	return out
}

// InvalidFields returns the names of fields carrying inline validation
// markers, in document order.
func (f *Form) InvalidFields() []string {
	var out []string
	seen := map[string]bool{}
	for _, field := range f.Fields {
		if field.Invalid && !seen[field.Name] {
			out = append(out, field.Name)
			seen[field.Name] = true
		}
	}
	return out
}

func (f *Form) lookupValue(name string) string {
	for _, p := range f.index[name] {
		return f.Fields[p].Value
	}
	return ""
}

// parseMinutes treats malformed or missing duration weights as 0, never as
// negative.
func parseMinutes(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func selectedOption(n *html.Node) string {
	var first, selected string
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "option" {
			value := attr(c, "value")
			if value == "" {
				value = textContent(c)
			}
			if first == "" {
				first = value
			}
			if hasAttr(c, "selected") {
				selected = value
			}
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	if selected != "" {
		return selected
	}
	return first
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
