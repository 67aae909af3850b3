// Package upstream provides the HTTP client for the tracker backend, which
// owns wizard step markup, validation, and persistence. Every call identifies
// itself as a programmatic request so the backend answers with JSON instead
// of a full page.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"intake_gateway/platform/apperr"
	"intake_gateway/platform/config"
	"intake_gateway/platform/logger"
)

const (
	checkExistsPath  = "/api/customers/check-exists/"
	serviceTypesPath = "/api/orders/service-types/"

	requestedWithHeader = "X-Requested-With"
	requestedWithValue  = "XMLHttpRequest"
	csrfHeader          = "X-CSRFToken"
)

// Client is the HTTP client for the tracker backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	wizardPath string
	csrfToken  string
	log        *logger.Logger
}

// New creates a new tracker backend client.
func New(cfg config.UpstreamConfig, log *logger.Logger) *Client {
	timeout := cfg.GetUpstreamTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.GetUpstreamBaseURL(), "/"),
		wizardPath: cfg.GetWizardPath(),
		csrfToken:  cfg.GetCSRFToken(),
		log:        log,
	}
}

// LoadStep fetches a step's markup without submitting anything. Used for
// explicit navigation, including going backward.
func (c *Client) LoadStep(ctx context.Context, step int) (*StepResponse, error) {
	params := url.Values{}
	params.Set("step", strconv.Itoa(step))
	params.Set("load_step", "1")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, c.wizardPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Upstream("load step: create request", err).WithOp("upstream.LoadStep")
	}
	req.Header.Set(requestedWithHeader, requestedWithValue)

	var out StepResponse
	if err := c.do(req, "load_step", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitStep posts the full current-step form fields (including step and
// save_only) to the wizard endpoint.
func (c *Client) SubmitStep(ctx context.Context, fields url.Values) (*StepResponse, error) {
	reqURL := c.baseURL + c.wizardPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, apperr.Upstream("submit step: create request", err).WithOp("upstream.SubmitStep")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(requestedWithHeader, requestedWithValue)
	if c.csrfToken != "" {
		req.Header.Set(csrfHeader, c.csrfToken)
	}

	var out StepResponse
	if err := c.do(req, "submit_step", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckPhone asks whether a customer with the given phone number already
// exists. The phone is expected to be pre-normalized to E.164.
func (c *Client) CheckPhone(ctx context.Context, phone string) (*CheckExistsResponse, error) {
	params := url.Values{}
	params.Set("phone", phone)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, checkExistsPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Upstream("check phone: create request", err).WithOp("upstream.CheckPhone")
	}
	req.Header.Set(requestedWithHeader, requestedWithValue)

	var out CheckExistsResponse
	if err := c.do(req, "check_phone", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServiceTypes fetches the selectable service/addon catalogue.
func (c *Client) ServiceTypes(ctx context.Context) (*ServiceTypesResponse, error) {
	reqURL := c.baseURL + serviceTypesPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Upstream("service types: create request", err).WithOp("upstream.ServiceTypes")
	}
	req.Header.Set(requestedWithHeader, requestedWithValue)

	var out ServiceTypesResponse
	if err := c.do(req, "service_types", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do executes the request and decodes a JSON body. A failed request, a
// non-2xx status, and an unparsable body are all the same retryable upstream
// failure to callers.
func (c *Client) do(req *http.Request, operation string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(operation, err)
		return apperr.Upstream("tracker backend unreachable", err).WithOp("upstream." + operation)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("status %d", resp.StatusCode)
		c.log.UpstreamError(operation, err)
		return apperr.Upstream("tracker backend error", err).WithOp("upstream." + operation)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.UpstreamError(operation, err)
		return apperr.Upstream("tracker backend returned an unparsable response", err).WithOp("upstream." + operation)
	}

	return nil
}
