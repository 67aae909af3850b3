// Package transport defines the request/response DTOs for the wizard API.
package transport

import (
	"intake_gateway/internal/compose"
	"intake_gateway/internal/wizard/domain"
	"intake_gateway/internal/wizard/service"
	"intake_gateway/platform/apperr"
)

// ActionRequest is the uniform dispatch payload. Action selects the variant;
// the remaining fields apply only to the variants that need them.
type ActionRequest struct {
	Action  string `json:"action" validate:"required,oneof=next_step prev_step submit save select_intent select_customer_type toggle_service set_field"`
	Name    string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Value   string `json:"value,omitempty" validate:"omitempty,max=2000"`
	Group   string `json:"group,omitempty" validate:"omitempty,oneof=service addon tireService"`
	ID      string `json:"id,omitempty" validate:"omitempty,max=50"`
	Checked bool   `json:"checked,omitempty"`
}

// ToAction maps the wire payload onto a typed action variant.
func (r ActionRequest) ToAction() (domain.Action, error) {
	switch r.Action {
	case "next_step":
		return domain.NextStep{}, nil
	case "prev_step":
		return domain.PrevStep{}, nil
	case "submit":
		return domain.Submit{}, nil
	case "save":
		return domain.Save{}, nil
	case "select_intent":
		intent, err := domain.ParseIntent(r.Value)
		if err != nil {
			return nil, err
		}
		return domain.SelectIntent{Value: intent}, nil
	case "select_customer_type":
		ct, err := domain.ParseCustomerType(r.Value)
		if err != nil {
			return nil, err
		}
		return domain.SelectCustomerType{Value: ct}, nil
	case "toggle_service":
		if r.Group == "" || r.ID == "" {
			return nil, apperr.Validation("toggle_service requires group and id")
		}
		return domain.ToggleService{Group: r.Group, ID: r.ID, Checked: r.Checked}, nil
	case "set_field":
		if r.Name == "" {
			return nil, apperr.Validation("set_field requires a field name")
		}
		return domain.SetField{Name: r.Name, Value: r.Value}, nil
	default:
		return nil, apperr.Validation("unknown action: " + r.Action)
	}
}

// EstimateResponse is the derived duration estimate read-model.
type EstimateResponse struct {
	TotalMinutes int    `json:"totalMinutes"`
	Hint         string `json:"hint,omitempty"`
	HintVisible  bool   `json:"hintVisible"`
}

// SessionResponse is the full wizard view the front-end paints from.
type SessionResponse struct {
	SessionID     string              `json:"sessionId"`
	Outcome       domain.Outcome      `json:"outcome"`
	Intent        string              `json:"intent,omitempty"`
	CustomerType  string              `json:"customerType,omitempty"`
	Progress      domain.Progress     `json:"progress"`
	Estimate      EstimateResponse    `json:"estimate"`
	Plan          compose.Plan        `json:"plan"`
	FormHTML      string              `json:"formHtml,omitempty"`
	FieldValues   map[string]string   `json:"fieldValues,omitempty"`
	CheckedValues map[string][]string `json:"checkedValues,omitempty"`
}

// FromResult maps a controller result to its response shape. A redirected
// session carries no markup: the front-end is leaving.
func FromResult(res *service.Result) SessionResponse {
	out := SessionResponse{
		SessionID:    res.Session.ID,
		Outcome:      res.Outcome,
		Intent:       string(res.Session.Intent),
		CustomerType: string(res.Session.CustomerType),
		Progress:     res.Progress,
		Estimate: EstimateResponse{
			TotalMinutes: res.Estimate.TotalMinutes,
			Hint:         res.Estimate.Hint,
			HintVisible:  res.Estimate.Hint != "",
		},
		Plan: res.Plan,
	}
	if res.Outcome.Kind != domain.OutcomeRedirected {
		out.FormHTML = res.Session.FormHTML
		out.FieldValues = res.Session.FieldValues
		out.CheckedValues = res.Session.CheckedValues
	}
	return out
}
