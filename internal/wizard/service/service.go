// Package service implements the wizard controller: per-session step
// navigation, the duplicate gate in front of the first forward transition,
// field and selection state on top of the painted markup, and the decision
// table that interprets upstream submission responses.
package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"intake_gateway/internal/bridge"
	"intake_gateway/internal/compose"
	"intake_gateway/internal/dupgate"
	"intake_gateway/internal/eta"
	"intake_gateway/internal/events"
	"intake_gateway/internal/markup"
	"intake_gateway/internal/upstream"
	"intake_gateway/internal/wizard/domain"
	"intake_gateway/platform/apperr"
	"intake_gateway/platform/logger"
)

// Field names the controller treats specially. They match the upstream form.
const (
	fieldPhone        = "phone"
	fieldIntent       = "intent"
	fieldCustomerType = "customer_type"
	fieldItemName     = "item_name"
	fieldBrand        = "brand"
	fieldPlateNumber  = "plate_number"
	fieldMake         = "make"
	fieldModel        = "model"
	fieldVehicleType  = "vehicle_type"
	fieldServices     = "service_selection"
	fieldTireServices = "tire_services"
)

// bridgedFields are carried across a forward transition when the outgoing
// step holds them and consumed by the first later step that renders them.
// The vehicle block collapses into a summary on the review step, so those
// four are the fields most often lost to a repaint.
var bridgedFields = []string{
	fieldPlateNumber, fieldMake, fieldModel, fieldVehicleType,
	fieldItemName, fieldBrand,
}

// UpstreamClient is the slice of the tracker client the controller needs.
type UpstreamClient interface {
	LoadStep(ctx context.Context, step int) (*upstream.StepResponse, error)
	SubmitStep(ctx context.Context, fields url.Values) (*upstream.StepResponse, error)
}

// SessionStore persists wizard sessions and hands out the per-session
// navigation lock. AcquireAdvance must be atomic: of two concurrent callers
// exactly one acquires.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
	AcquireAdvance(ctx context.Context, id string) (bool, error)
	ReleaseAdvance(ctx context.Context, id string) error
}

// BridgeStore carries field snapshots across steps.
type BridgeStore interface {
	Put(ctx context.Context, sessionID string, snap bridge.Snapshot) error
	Take(ctx context.Context, sessionID string) (bridge.Snapshot, error)
}

// DuplicateChecker decides whether a phone already belongs to a customer.
type DuplicateChecker interface {
	Check(ctx context.Context, rawPhone string) dupgate.Verdict
}

// DurationResolver looks up an option's duration weight from the catalogue.
// Used when the painted markup carries no data-minutes weight of its own.
type DurationResolver interface {
	DurationFor(ctx context.Context, group string, id int64) (int, error)
}

// Result is the controller's answer to any operation: the session after the
// operation, what happened, and the derived read-models the front-end paints
// from.
type Result struct {
	Session  *domain.Session
	Outcome  domain.Outcome
	Progress domain.Progress
	Estimate eta.Estimate
	Plan     compose.Plan
}

// Service is the wizard controller.
type Service struct {
	client    UpstreamClient
	sessions  SessionStore
	bridge    BridgeStore
	dupes     DuplicateChecker
	composer  *compose.Composer
	durations DurationResolver
	bus       events.Bus
	log       *logger.Logger
}

// New creates the wizard controller. durations may be nil; the estimate then
// relies on the weights painted into the markup.
func New(client UpstreamClient, sessions SessionStore, bridgeStore BridgeStore, dupes DuplicateChecker, composer *compose.Composer, durations DurationResolver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		client:    client,
		sessions:  sessions,
		bridge:    bridgeStore,
		dupes:     dupes,
		composer:  composer,
		durations: durations,
		bus:       bus,
		log:       log,
	}
}

// Start mounts a new wizard session on the first step.
func (s *Service) Start(ctx context.Context) (*Result, error) {
	resp, err := s.client.LoadStep(ctx, domain.FirstStep)
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		ID:          uuid.NewString(),
		CurrentStep: domain.FirstStep,
	}
	s.paint(sess, resp.FormHTML, domain.FirstStep)

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.SessionStarted{
		BaseEvent: events.NewBaseEvent(),
		SessionID: sess.ID,
		Step:      sess.CurrentStep,
	})
	s.log.WizardEvent("session_started", sess.ID, sess.CurrentStep)

	return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeRepainted, Step: sess.CurrentStep})
}

// Get returns the session with its derived read-models.
func (s *Service) Get(ctx context.Context, sessionID string) (*Result, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeRepainted, Step: sess.CurrentStep})
}

// Dispatch applies one action to the session and returns what happened.
func (s *Service) Dispatch(ctx context.Context, sessionID string, action domain.Action) (*Result, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch a := action.(type) {
	case domain.NextStep, domain.Submit:
		return s.advance(ctx, sess)
	case domain.PrevStep:
		return s.goBack(ctx, sess)
	case domain.Save:
		return s.save(ctx, sess)
	case domain.SelectIntent:
		return s.selectIntent(ctx, sess, a.Value)
	case domain.SelectCustomerType:
		return s.selectCustomerType(ctx, sess, a.Value)
	case domain.ToggleService:
		return s.toggleService(ctx, sess, a)
	case domain.SetField:
		return s.setField(ctx, sess, a.Name, a.Value)
	default:
		return nil, apperr.BadRequest("unknown action: " + action.ActionName())
	}
}

// advance is the forward transition: duplicate gate on the first step, then
// a full submission of the current form document, then the decision table.
func (s *Service) advance(ctx context.Context, sess *domain.Session) (*Result, error) {
	acquired, err := s.sessions.AcquireAdvance(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeIgnored, Step: sess.CurrentStep})
	}

	form, err := s.materialize(sess)
	if err != nil {
		return nil, s.failAdvance(ctx, sess, err)
	}

	if sess.CurrentStep == domain.FirstStep {
		phone := firstValue(form, fieldPhone)
		if verdict := s.dupes.Check(ctx, phone); verdict.Duplicate {
			s.bus.Publish(ctx, events.DuplicateDetected{
				BaseEvent: events.NewBaseEvent(),
				SessionID: sess.ID,
				Phone:     phone,
				DetailURL: verdict.DetailURL,
			})
			s.log.WizardEvent("duplicate_detected", sess.ID, sess.CurrentStep)

			if err := s.sessions.Delete(ctx, sess.ID); err != nil {
				s.log.UpstreamError("session_delete", err)
			}
			return s.result(ctx, sess, domain.Outcome{
				Kind:        domain.OutcomeRedirected,
				Step:        sess.CurrentStep,
				RedirectURL: verdict.DetailURL,
				Message:     verdict.Name + " is already registered",
				MessageType: "info",
			})
		}
	}

	startSeq := sess.Seq
	fromStep := sess.CurrentStep

	fields := form.Values()
	fields.Set("step", strconv.Itoa(sess.CurrentStep))
	fields.Set("save_only", "false")

	resp, err := s.client.SubmitStep(ctx, fields)
	if err != nil {
		return nil, s.failAdvance(ctx, sess, err)
	}

	// The session may have been mutated while the submission was in
	// flight. A stale response never overwrites newer state.
	fresh, stale, err := s.ensureFresh(ctx, sess.ID, startSeq)
	if err != nil {
		return nil, err
	}
	if stale {
		return s.discardStale(ctx, fresh)
	}
	sess = fresh

	switch {
	case resp.RedirectURL != "":
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			s.log.UpstreamError("session_delete", err)
		}
		s.bus.Publish(ctx, events.WizardCompleted{
			BaseEvent:   events.NewBaseEvent(),
			SessionID:   sess.ID,
			RedirectURL: resp.RedirectURL,
		})
		s.log.WizardEvent("completed", sess.ID, sess.CurrentStep)
		return s.result(ctx, sess, domain.Outcome{
			Kind:        domain.OutcomeRedirected,
			Step:        sess.CurrentStep,
			RedirectURL: resp.RedirectURL,
			Message:     resp.Message,
			MessageType: resp.MessageType,
		})

	case resp.FormHTML != "" && !resp.Success:
		// Validation failed: the upstream repaints the same step with
		// inline error markers.
		s.paint(sess, resp.FormHTML, sess.CurrentStep)
		return s.finishAdvance(ctx, sess, domain.Outcome{
			Kind:        domain.OutcomeRepainted,
			Step:        sess.CurrentStep,
			Message:     resp.Message,
			MessageType: messageTypeOr(resp.MessageType, "error"),
			FieldErrors: fieldErrors(resp),
		})

	case resp.FormHTML != "":
		// Accepted with markup: the markup's own declared step wins,
		// then the explicit next_step, then a plain increment.
		next := domain.NextOf(sess.CurrentStep)
		if parsed, err := markup.Parse(resp.FormHTML); err == nil && domain.ValidStep(parsed.Step) {
			next = parsed.Step
		} else if resp.NextStep != nil && domain.ValidStep(*resp.NextStep) {
			next = *resp.NextStep
		}
		if err := s.carryBridge(ctx, sess, form); err != nil {
			s.log.UpstreamError("bridge_put", err)
		}
		s.paint(sess, resp.FormHTML, next)
		s.restoreBridge(ctx, sess)
		return s.advanced(ctx, sess, fromStep, resp)

	default:
		// Accepted without markup: load the next step explicitly. The
		// load is a second suspension point, so the sequence is checked
		// again before the response may paint.
		next := domain.NextOf(sess.CurrentStep)
		loaded, err := s.client.LoadStep(ctx, next)
		if err != nil {
			return nil, s.failAdvance(ctx, sess, err)
		}
		fresh, stale, err := s.ensureFresh(ctx, sess.ID, startSeq)
		if err != nil {
			return nil, err
		}
		if stale {
			return s.discardStale(ctx, fresh)
		}
		sess = fresh
		if err := s.carryBridge(ctx, sess, form); err != nil {
			s.log.UpstreamError("bridge_put", err)
		}
		s.paint(sess, loaded.FormHTML, next)
		s.restoreBridge(ctx, sess)
		return s.advanced(ctx, sess, fromStep, resp)
	}
}

// advanced finishes a successful forward transition.
func (s *Service) advanced(ctx context.Context, sess *domain.Session, fromStep int, resp *upstream.StepResponse) (*Result, error) {
	res, err := s.finishAdvance(ctx, sess, domain.Outcome{
		Kind:        domain.OutcomeRepainted,
		Step:        sess.CurrentStep,
		Message:     resp.Message,
		MessageType: resp.MessageType,
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.StepAdvanced{
		BaseEvent: events.NewBaseEvent(),
		SessionID: sess.ID,
		FromStep:  fromStep,
		ToStep:    sess.CurrentStep,
	})
	s.log.WizardEvent("step_advanced", sess.ID, sess.CurrentStep)
	return res, nil
}

// finishAdvance bumps the sequence, saves and releases the navigation lock.
func (s *Service) finishAdvance(ctx context.Context, sess *domain.Session, outcome domain.Outcome) (*Result, error) {
	sess.Seq++
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, s.failAdvance(ctx, sess, err)
	}
	s.releaseAdvance(ctx, sess.ID)
	return s.result(ctx, sess, outcome)
}

// failAdvance releases the navigation lock after a failed navigation and
// returns the original error. The session is left untouched.
func (s *Service) failAdvance(ctx context.Context, sess *domain.Session, cause error) error {
	s.releaseAdvance(ctx, sess.ID)
	return cause
}

func (s *Service) releaseAdvance(ctx context.Context, sessionID string) {
	if err := s.sessions.ReleaseAdvance(ctx, sessionID); err != nil {
		s.log.UpstreamError("advance_unlock", err)
	}
}

// ensureFresh reloads the session after a suspension point and reports
// whether a newer mutation completed in the meantime.
func (s *Service) ensureFresh(ctx context.Context, sessionID string, startSeq uint64) (*domain.Session, bool, error) {
	fresh, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.releaseAdvance(ctx, sessionID)
		return nil, false, err
	}
	return fresh, fresh.Seq != startSeq, nil
}

// discardStale drops a response that resolved after a newer mutation and
// answers with the session as that mutation left it.
func (s *Service) discardStale(ctx context.Context, fresh *domain.Session) (*Result, error) {
	s.releaseAdvance(ctx, fresh.ID)
	return s.result(ctx, fresh, domain.Outcome{Kind: domain.OutcomeIgnored, Step: fresh.CurrentStep})
}

// goBack loads the previous step's markup. No duplicate check, no
// validation, no submission. It shares the navigation lock with advance so
// the two can never interleave, and discards its load response when a newer
// mutation completed while the load was in flight.
func (s *Service) goBack(ctx context.Context, sess *domain.Session) (*Result, error) {
	if sess.CurrentStep <= domain.FirstStep {
		return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeUpdated, Step: sess.CurrentStep})
	}

	acquired, err := s.sessions.AcquireAdvance(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeIgnored, Step: sess.CurrentStep})
	}

	startSeq := sess.Seq
	prev := sess.CurrentStep - 1
	resp, err := s.client.LoadStep(ctx, prev)
	if err != nil {
		return nil, s.failAdvance(ctx, sess, err)
	}

	fresh, stale, err := s.ensureFresh(ctx, sess.ID, startSeq)
	if err != nil {
		return nil, err
	}
	if stale {
		return s.discardStale(ctx, fresh)
	}
	sess = fresh

	s.paint(sess, resp.FormHTML, prev)
	return s.finishAdvance(ctx, sess, domain.Outcome{Kind: domain.OutcomeRepainted, Step: prev})
}

// save performs a save-only submission: persist what is filled in so far
// without navigating.
func (s *Service) save(ctx context.Context, sess *domain.Session) (*Result, error) {
	form, err := s.materialize(sess)
	if err != nil {
		return nil, err
	}

	fields := form.Values()
	fields.Set("step", strconv.Itoa(sess.CurrentStep))
	fields.Set("save_only", "true")

	startSeq := sess.Seq
	sess.SaveOnly = true
	resp, err := s.client.SubmitStep(ctx, fields)
	sess.SaveOnly = false
	if err != nil {
		return nil, err
	}

	// A mutation that completed while the save was in flight wins; the
	// save response is dropped rather than repainting over it.
	fresh, err := s.sessions.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if fresh.Seq != startSeq {
		return s.result(ctx, fresh, domain.Outcome{Kind: domain.OutcomeIgnored, Step: fresh.CurrentStep})
	}
	sess = fresh

	if resp.FormHTML != "" && !resp.Success {
		s.paint(sess, resp.FormHTML, sess.CurrentStep)
		sess.Seq++
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return s.result(ctx, sess, domain.Outcome{
			Kind:        domain.OutcomeRepainted,
			Step:        sess.CurrentStep,
			Message:     resp.Message,
			MessageType: messageTypeOr(resp.MessageType, "error"),
			FieldErrors: fieldErrors(resp),
		})
	}

	message := resp.Message
	if message == "" {
		message = "Progress saved"
	}
	return s.result(ctx, sess, domain.Outcome{
		Kind:        domain.OutcomeSaved,
		Step:        sess.CurrentStep,
		Message:     message,
		MessageType: messageTypeOr(resp.MessageType, "success"),
	})
}

// selectIntent records the declared purpose, mirrors it into the form
// document and kicks off a background save so the choice survives an
// abandoned session.
func (s *Service) selectIntent(ctx context.Context, sess *domain.Session, value domain.Intent) (*Result, error) {
	sess.Intent = value
	form, err := s.materialize(sess)
	if err != nil {
		return nil, err
	}
	if form.Has(fieldIntent) {
		sess.SetCheckedValues(fieldIntent, []string{string(value)})
	}

	sess.Seq++
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.autoSave(ctx, sess.ID)
	return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeUpdated, Step: sess.CurrentStep})
}

// autoSave fires a save-only submission in the background. Failures are
// logged and otherwise invisible; the user keeps working.
func (s *Service) autoSave(ctx context.Context, sessionID string) {
	bg := context.WithoutCancel(ctx)
	go func() {
		sess, err := s.sessions.Get(bg, sessionID)
		if err != nil {
			s.log.UpstreamError("auto_save", err)
			return
		}
		if _, err := s.save(bg, sess); err != nil {
			s.log.UpstreamError("auto_save", err)
		}
	}()
}

// selectCustomerType switches the personal/organization block split.
func (s *Service) selectCustomerType(ctx context.Context, sess *domain.Session, value domain.CustomerType) (*Result, error) {
	sess.CustomerType = value
	form, err := s.materialize(sess)
	if err != nil {
		return nil, err
	}
	if form.Has(fieldCustomerType) {
		sess.SetCheckedValues(fieldCustomerType, []string{string(value)})
	}

	sess.Seq++
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeUpdated, Step: sess.CurrentStep})
}

// toggleService checks or unchecks one selectable item and lets the derived
// estimate follow.
func (s *Service) toggleService(ctx context.Context, sess *domain.Session, a domain.ToggleService) (*Result, error) {
	name := selectionFieldName(a.Group)
	if name == "" {
		return nil, apperr.BadRequest("unknown selection group: " + a.Group)
	}

	form, err := s.materialize(sess)
	if err != nil {
		return nil, err
	}
	if !form.Has(name) {
		return nil, apperr.BadRequest("selection group not on this step: " + name)
	}

	checked := checkedValues(form, name)
	if a.Checked {
		checked = appendUnique(checked, a.ID)
	} else {
		checked = remove(checked, a.ID)
	}
	sess.SetCheckedValues(name, checked)

	sess.Seq++
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeUpdated, Step: sess.CurrentStep})
}

// setField writes one field, with item-to-brand autofill when the write is
// an item pick and the brand is still empty.
func (s *Service) setField(ctx context.Context, sess *domain.Session, name, value string) (*Result, error) {
	form, err := s.materialize(sess)
	if err != nil {
		return nil, err
	}
	if !form.Has(name) {
		return nil, apperr.BadRequest("unknown field: " + name)
	}

	sess.SetFieldValue(name, value)

	if name == fieldItemName {
		if brand, ok := form.ItemBrandMap[value]; ok && brand != "" &&
			form.Has(fieldBrand) && firstValue(form, fieldBrand) == "" {
			sess.SetFieldValue(fieldBrand, brand)
		}
	}

	sess.Seq++
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return s.result(ctx, sess, domain.Outcome{Kind: domain.OutcomeUpdated, Step: sess.CurrentStep})
}

// paint replaces the form document: new markup becomes the baseline, all
// overrides and bindings are dropped, and the standard controls re-bind once.
func (s *Service) paint(sess *domain.Session, formHTML string, step int) {
	sess.FormHTML = formHTML
	sess.CurrentStep = step
	sess.ClearOverrides()
	sess.ResetBindings()
	for _, control := range []string{"next-button", "prev-button", "intent-radios", "customer-type-radios", "service-checkboxes"} {
		sess.Bind(control)
	}
}

// carryBridge snapshots the bridged fields of the outgoing form.
func (s *Service) carryBridge(ctx context.Context, sess *domain.Session, form *markup.Form) error {
	snap := bridge.Snapshot{}
	for _, name := range bridgedFields {
		if v := firstValue(form, name); v != "" {
			snap[name] = v
		}
	}
	if len(snap) == 0 {
		return nil
	}
	return s.bridge.Put(ctx, sess.ID, snap)
}

// restoreBridge consumes the snapshot and applies whatever the new step can
// hold. Fields the step does not render are discarded with it.
func (s *Service) restoreBridge(ctx context.Context, sess *domain.Session) {
	snap, err := s.bridge.Take(ctx, sess.ID)
	if err != nil {
		s.log.UpstreamError("bridge_take", err)
		return
	}
	if len(snap) == 0 {
		return
	}

	form, err := markup.Parse(sess.FormHTML)
	if err != nil {
		return
	}
	for name, value := range snap {
		if form.Has(name) && firstValue(form, name) == "" {
			sess.SetFieldValue(name, value)
		}
	}
}

// materialize parses the painted markup, applies the session's overrides and
// re-applies the section plan so required flags match the composed layout.
func (s *Service) materialize(sess *domain.Session) (*markup.Form, error) {
	form, err := markup.Parse(sess.FormHTML)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "parse painted markup", err).WithOp("wizard.materialize")
	}
	for name, value := range sess.FieldValues {
		form.SetValue(name, value)
	}
	for name, values := range sess.CheckedValues {
		form.SetCheckedSet(name, values)
	}
	s.composer.Apply(s.composer.Compose(sess.Intent, sess.CustomerType), form)
	return form, nil
}

// result assembles the derived read-models around an outcome.
func (s *Service) result(ctx context.Context, sess *domain.Session, outcome domain.Outcome) (*Result, error) {
	res := &Result{
		Session:  sess,
		Outcome:  outcome,
		Progress: sess.Progress(),
		Plan:     s.composer.Compose(sess.Intent, sess.CustomerType),
	}

	form, err := s.materialize(sess)
	if err != nil {
		return nil, err
	}
	res.Estimate = eta.Aggregate(
		s.selections(ctx, form, fieldServices, eta.GroupService),
		s.selections(ctx, form, fieldTireServices, eta.GroupTireService),
	)
	return res, nil
}

// selections turns one checkbox group into estimate inputs. A weight missing
// from the markup is resolved against the catalogue when a resolver is wired.
func (s *Service) selections(ctx context.Context, form *markup.Form, name string, group eta.Group) []eta.Selection {
	fields := form.Lookup(name)
	out := make([]eta.Selection, 0, len(fields))
	for _, f := range fields {
		minutes := f.DurationMinutes
		if minutes == 0 && f.Checked && s.durations != nil {
			if id, err := strconv.ParseInt(f.Value, 10, 64); err == nil {
				if resolved, err := s.durations.DurationFor(ctx, string(group), id); err == nil {
					minutes = resolved
				}
			}
		}
		out = append(out, eta.Selection{
			ID:              f.Value,
			Group:           group,
			DurationMinutes: minutes,
			Checked:         f.Checked,
		})
	}
	return out
}

func selectionFieldName(group string) string {
	switch group {
	case "service":
		return fieldServices
	case "addon", "tireService":
		return fieldTireServices
	default:
		return ""
	}
}

func firstValue(form *markup.Form, name string) string {
	for _, f := range form.Lookup(name) {
		switch f.Kind {
		case markup.KindCheckbox, markup.KindRadio:
			if f.Checked {
				return f.Value
			}
		default:
			return f.Value
		}
	}
	return ""
}

func checkedValues(form *markup.Form, name string) []string {
	var out []string
	for _, f := range form.Lookup(name) {
		if f.Checked {
			out = append(out, f.Value)
		}
	}
	return out
}

func fieldErrors(resp *upstream.StepResponse) map[string][]string {
	if len(resp.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(resp.Errors))
	for name, errs := range resp.Errors {
		out[name] = errs
	}
	return out
}

func messageTypeOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

func remove(values []string, v string) []string {
	out := values[:0]
	for _, existing := range values {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}
