package domain

// Action is the tagged variant type for everything a front-end can ask the
// wizard to do. Dispatching on a closed set of variants replaces branching
// on raw control identifier strings.
type Action interface {
	// ActionName returns the wire name of the variant.
	ActionName() string
	isAction()
}

// NextStep asks the controller to advance past the current step.
type NextStep struct{}

func (NextStep) ActionName() string { return "next_step" }
func (NextStep) isAction()          {}

// PrevStep asks the controller to go back one step. No duplicate check, no
// validation.
type PrevStep struct{}

func (PrevStep) ActionName() string { return "prev_step" }
func (PrevStep) isAction()          {}

// SelectIntent records the user's declared purpose and auto-saves it.
type SelectIntent struct {
	Value Intent
}

func (SelectIntent) ActionName() string { return "select_intent" }
func (SelectIntent) isAction()          {}

// SelectCustomerType switches the personal/organization visibility split.
type SelectCustomerType struct {
	Value CustomerType
}

func (SelectCustomerType) ActionName() string { return "select_customer_type" }
func (SelectCustomerType) isAction()          {}

// ToggleService checks or unchecks one selectable service/addon item.
type ToggleService struct {
	Group   string
	ID      string
	Checked bool
}

func (ToggleService) ActionName() string { return "toggle_service" }
func (ToggleService) isAction()          {}

// SetField writes a value into a named field of the current form document.
type SetField struct {
	Name  string
	Value string
}

func (SetField) ActionName() string { return "set_field" }
func (SetField) isAction()          {}

// Submit posts the current step without advancing semantics beyond what the
// upstream decides (alias of NextStep for the final step).
type Submit struct{}

func (Submit) ActionName() string { return "submit" }
func (Submit) isAction()          {}

// Save performs a save-only submission: persist what is filled in so far
// without step navigation.
type Save struct{}

func (Save) ActionName() string { return "save" }
func (Save) isAction()          {}

// OutcomeKind classifies what a dispatched action did to the session.
type OutcomeKind string

const (
	// OutcomeRepainted means the current or next step's markup replaced
	// the form document. Inspect Step to see where the session is now.
	OutcomeRepainted OutcomeKind = "repainted"
	// OutcomeRedirected means the session is finished and the front-end
	// must navigate to RedirectURL. Terminal.
	OutcomeRedirected OutcomeKind = "redirected"
	// OutcomeSaved means a save-only submission succeeded; the session
	// stays on the same step.
	OutcomeSaved OutcomeKind = "saved"
	// OutcomeUpdated means only client-side state changed (field write,
	// selection toggle, intent choice).
	OutcomeUpdated OutcomeKind = "updated"
	// OutcomeIgnored means another advance was already in flight and this
	// one was dropped, per the single-flight policy.
	OutcomeIgnored OutcomeKind = "ignored"
)

// Outcome is the controller's uniform answer to a dispatched action.
type Outcome struct {
	Kind        OutcomeKind         `json:"kind"`
	Step        int                 `json:"step"`
	RedirectURL string              `json:"redirectUrl,omitempty"`
	Message     string              `json:"message,omitempty"`
	MessageType string              `json:"messageType,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
}
