package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intake_gateway/platform/apperr"
	"intake_gateway/platform/logger"
)

type testConfig struct {
	baseURL string
}

func (c testConfig) GetUpstreamBaseURL() string        { return c.baseURL }
func (c testConfig) GetWizardPath() string             { return "/customers/register/" }
func (c testConfig) GetCSRFToken() string              { return "csrf-token" }
func (c testConfig) GetUpstreamTimeout() time.Duration { return 2 * time.Second }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testConfig{baseURL: srv.URL}, logger.New("test"))
}

func TestLoadStepRequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/customers/register/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("step") != "2" || r.URL.Query().Get("load_step") != "1" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
			t.Errorf("X-Requested-With = %q", r.Header.Get("X-Requested-With"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "form_html": "<form></form>"}`))
	})

	resp, err := client.LoadStep(context.Background(), 2)
	if err != nil {
		t.Fatalf("load step: %v", err)
	}
	if !resp.Success || resp.FormHTML != "<form></form>" {
		t.Errorf("response = %+v", resp)
	}
}

func TestSubmitStepPostsFormWithCSRF(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", got)
		}
		if r.Header.Get("X-CSRFToken") != "csrf-token" {
			t.Errorf("csrf = %q", r.Header.Get("X-CSRFToken"))
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("step") != "1" || r.PostForm.Get("full_name") != "Asha" {
			t.Errorf("form = %v", r.PostForm)
		}
		w.Write([]byte(`{"success": true, "next_step": 2}`))
	})

	fields := map[string][]string{"step": {"1"}, "full_name": {"Asha"}}
	resp, err := client.SubmitStep(context.Background(), fields)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.NextStep == nil || *resp.NextStep != 2 {
		t.Errorf("next_step = %v", resp.NextStep)
	}
}

func TestSubmitStepFieldErrorShapes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": false,
			"form_html": "<form></form>",
			"message": "Please correct the errors below",
			"message_type": "error",
			"errors": {"phone": "This field is required.", "email": ["Enter a valid email address."]}
		}`))
	})

	resp, err := client.SubmitStep(context.Background(), map[string][]string{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := resp.Errors["phone"]; len(got) != 1 || got[0] != "This field is required." {
		t.Errorf("phone errors = %v", got)
	}
	if got := resp.Errors["email"]; len(got) != 1 {
		t.Errorf("email errors = %v", got)
	}
}

func TestCheckPhone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/customers/check-exists/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("phone") != "+255712345678" {
			t.Errorf("phone = %q", r.URL.Query().Get("phone"))
		}
		w.Write([]byte(`{"exists": true, "customer": {"id": 42, "name": "Asha Mushi", "detail_url": "/customers/42/"}}`))
	})

	resp, err := client.CheckPhone(context.Background(), "+255712345678")
	if err != nil {
		t.Fatalf("check phone: %v", err)
	}
	if !resp.Exists || resp.Customer == nil || resp.Customer.DetailURL != "/customers/42/" {
		t.Errorf("response = %+v", resp)
	}
}

func TestServiceTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders/service-types/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"service_types": [{"id": 1, "name": "Wheel alignment", "duration_minutes": 30}], "service_addons": []}`))
	})

	resp, err := client.ServiceTypes(context.Background())
	if err != nil {
		t.Fatalf("service types: %v", err)
	}
	if len(resp.ServiceTypes) != 1 || resp.ServiceTypes[0].DurationMinutes != 30 {
		t.Errorf("response = %+v", resp)
	}
}

func TestNon2xxIsRetryableUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.LoadStep(context.Background(), 1)
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Fatalf("kind = %v, want KindUpstream", apperr.GetKind(err))
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || !appErr.Retryable() {
		t.Error("upstream failure not marked retryable")
	}
}

func TestUnparsableBodyIsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.LoadStep(context.Background(), 1)
	if apperr.GetKind(err) != apperr.KindUpstream {
		t.Errorf("kind = %v, want KindUpstream", apperr.GetKind(err))
	}
}
