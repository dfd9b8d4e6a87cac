// Package hub talks to the ProofAI Agent Hub. The client submits packaged
// resources to the hub's type-specific collection endpoints; the
// orchestrator sequences the validate, package, and submit stages behind a
// progress reporter.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/proofai/proofai-cli/internal/archive"
	"github.com/proofai/proofai-cli/internal/metadata"
	"github.com/proofai/proofai-cli/util/common/errors"
)

const (
	// DefaultBaseURL is used when neither flag, environment variable, nor
	// config file names a hub.
	DefaultBaseURL = "http://localhost:3000"

	// DefaultTimeout bounds a whole submission attempt, including the
	// response body read.
	DefaultTimeout = 60 * time.Second
)

// endpoints maps each resource type to its collection path on the hub.
var endpoints = map[metadata.ResourceType]string{
	metadata.TypeAgent:   "/api/agents",
	metadata.TypeModel:   "/api/models",
	metadata.TypeDataset: "/api/datasets",
}

// receiptKeys maps each resource type to the identifier key the hub uses in
// its success payload.
var receiptKeys = map[metadata.ResourceType]string{
	metadata.TypeAgent:   "agentId",
	metadata.TypeModel:   "modelId",
	metadata.TypeDataset: "datasetId",
}

// Receipt is the hub's acknowledgement of a stored resource. Both fields
// are non-empty: a success response missing either is rejected as
// unintelligible rather than reported as a success.
type Receipt struct {
	// ResourceID identifies the stored resource. The hub reports it under
	// a type-specific key (agentId, modelId, datasetId) or the generic
	// resourceId.
	ResourceID string `json:"resourceId"`

	// JobID identifies the processing job the upload triggered.
	JobID string `json:"jobId"`
}

// ProgressFunc wraps a request body so its consumption can be observed. It
// returns the reader to send and a cleanup to run once the request is done.
type ProgressFunc func(contentLength int64, body io.Reader, name string) (io.Reader, func())

// Client submits resources to a hub over HTTP. One request per Submit call;
// retrying a failed submission is the caller's decision.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	progress   ProgressFunc
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey attaches an x-api-key header to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithProgress wraps the request body so uploads can drive a progress bar.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// NewClient creates a hub client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts the archive and its metadata to the endpoint for the
// resource's type and parses the hub's acknowledgement. The request is made
// exactly once: a failure surfaces as a RequestError (nothing reached the
// hub), ServerError (the hub refused), or ResponseError (the hub accepted
// but answered unintelligibly).
func (c *Client) Submit(ctx context.Context, res *metadata.Resource, a *archive.Archive) (*Receipt, error) {
	path, ok := endpoints[res.Type]
	if !ok {
		return nil, fmt.Errorf("no hub endpoint for resource type %q", res.Type)
	}
	url := c.baseURL + path

	var formData bytes.Buffer
	fileWriter := multipart.NewWriter(&formData)

	metadataJSON, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := fileWriter.WriteField("metadata", string(metadataJSON)); err != nil {
		return nil, err
	}

	// CreateFormFile would label the part application/octet-stream; the
	// hub expects application/zip.
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, a.Name))
	header.Set("Content-Type", "application/zip")
	part, err := fileWriter.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, a.Reader()); err != nil {
		return nil, err
	}

	if err := fileWriter.Close(); err != nil {
		return nil, err
	}

	body := io.Reader(&formData)
	cleanup := func() {}
	if c.progress != nil {
		body, cleanup = c.progress(int64(formData.Len()), &formData, a.Name)
	}
	defer cleanup()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, errors.NewRequestError(url, err)
	}
	req.Header.Set("Content-Type", fileWriter.FormDataContentType())
	req.Header.Set("X-Request-Id", uuid.New().String())
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRequestError(url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewRequestError(url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewServerError(url, resp.StatusCode, serverReason(respBody))
	}

	receipt, err := parseReceipt(res.Type, respBody)
	if err != nil {
		return nil, errors.NewResponseError(url, err.Error())
	}
	return receipt, nil
}

// serverReason extracts a human-readable reason from a rejection body. The
// hub reports {"error": "..."}; anything else is used verbatim.
func serverReason(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// parseReceipt reads the acknowledgement for a resource of the given type.
// The type-specific identifier key wins; the generic resourceId is accepted
// as a fallback. Identifier keys of other types are not. jobId must be
// present too: without it the upload cannot be tracked, so the response
// does not count as a success.
func parseReceipt(kind metadata.ResourceType, body []byte) (*Receipt, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %v", err)
	}

	id, _ := fields[receiptKeys[kind]].(string)
	if id == "" {
		id, _ = fields["resourceId"].(string)
	}
	if id == "" {
		return nil, fmt.Errorf("body is missing %s", receiptKeys[kind])
	}

	jobID, _ := fields["jobId"].(string)
	if jobID == "" {
		return nil, fmt.Errorf("body is missing jobId")
	}

	return &Receipt{ResourceID: id, JobID: jobID}, nil
}
