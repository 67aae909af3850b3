package upstream

import (
	"encoding/json"
	"fmt"
)

// StepResponse is the tracker backend's reply to a wizard step fetch or
// submission. Fields are optional; the wizard controller interprets the
// combinations (see the decision table in internal/wizard/service).
type StepResponse struct {
	Success     bool                   `json:"success"`
	FormHTML    string                 `json:"form_html"`
	RedirectURL string                 `json:"redirect_url"`
	NextStep    *int                   `json:"next_step"`
	Message     string                 `json:"message"`
	MessageType string                 `json:"message_type"`
	Errors      map[string]FieldErrors `json:"errors"`
}

// FieldErrors accepts both a single string and an array of strings, which is
// how the upstream serializes per-field validation messages.
type FieldErrors []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = FieldErrors{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("field errors: expected string or array of strings: %w", err)
	}
	*f = FieldErrors(many)
	return nil
}

// CheckExistsResponse is the reply from the duplicate-check endpoint.
type CheckExistsResponse struct {
	Exists   bool         `json:"exists"`
	Customer *CustomerRef `json:"customer"`
}

// CustomerRef points at an existing customer record.
type CustomerRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DetailURL string `json:"detail_url"`
}

// ServiceOption is one selectable service or addon item with its duration
// weight, as supplied by the service-types endpoint.
type ServiceOption struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ServiceTypesResponse carries the selectable catalogue for step 3.
type ServiceTypesResponse struct {
	ServiceTypes  []ServiceOption `json:"service_types"`
	ServiceAddons []ServiceOption `json:"service_addons"`
}
