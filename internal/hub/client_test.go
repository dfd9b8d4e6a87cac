package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofai/proofai-cli/internal/archive"
	"github.com/proofai/proofai-cli/internal/metadata"
	"github.com/proofai/proofai-cli/util/common/errors"
)

func testResource(kind metadata.ResourceType) *metadata.Resource {
	return &metadata.Resource{
		Type:        kind,
		Name:        "demo",
		Description: "A ProofAI " + strings.ToLower(kind.String()),
	}
}

func testArchive() *archive.Archive {
	return &archive.Archive{
		Name:    archive.Name,
		Data:    []byte("PK\x03\x04 payload bytes for transport tests"),
		Entries: []string{"main.py", "metadata.json"},
	}
}

func TestClientSubmitEndpoints(t *testing.T) {
	cases := []struct {
		kind  metadata.ResourceType
		path  string
		idKey string
	}{
		{metadata.TypeAgent, "/api/agents", "agentId"},
		{metadata.TypeModel, "/api/models", "modelId"},
		{metadata.TypeDataset, "/api/datasets", "datasetId"},
	}

	for _, tc := range cases {
		t.Run(strings.ToLower(tc.kind.String()), func(t *testing.T) {
			var gotPath, gotMethod string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotMethod = r.Method
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintf(w, `{"%s": "res-123", "jobId": "job-9"}`, tc.idKey)
			}))
			defer srv.Close()

			receipt, err := NewClient(srv.URL).Submit(context.Background(), testResource(tc.kind), testArchive())
			require.NoError(t, err)

			assert.Equal(t, tc.path, gotPath)
			assert.Equal(t, http.MethodPost, gotMethod)
			assert.Equal(t, "res-123", receipt.ResourceID)
			assert.Equal(t, "job-9", receipt.JobID)
		})
	}
}

func TestClientSubmitRequestShape(t *testing.T) {
	var (
		gotMetadata  string
		gotFileName  string
		gotFileType  string
		gotFileBytes []byte
		gotRequestID string
		gotAPIKey    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotMetadata = r.FormValue("metadata")

		file, fileHeader, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = fileHeader.Filename
		gotFileType = fileHeader.Header.Get("Content-Type")
		gotFileBytes, err = io.ReadAll(file)
		require.NoError(t, err)

		gotRequestID = r.Header.Get("X-Request-Id")
		gotAPIKey = r.Header.Get("x-api-key")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"agentId": "a-1", "jobId": "j-1"}`))
	}))
	defer srv.Close()

	a := testArchive()
	client := NewClient(srv.URL, WithAPIKey("pk-test"))
	_, err := client.Submit(context.Background(), testResource(metadata.TypeAgent), a)
	require.NoError(t, err)

	assert.Equal(t, "resource.zip", gotFileName)
	assert.Equal(t, "application/zip", gotFileType)
	assert.Equal(t, a.Data, gotFileBytes)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "pk-test", gotAPIKey)

	var sent metadata.Resource
	require.NoError(t, json.Unmarshal([]byte(gotMetadata), &sent))
	assert.Equal(t, metadata.TypeAgent, sent.Type)
	assert.Equal(t, "demo", sent.Name)
}

func TestClientSubmitOmitsAPIKeyWhenUnset(t *testing.T) {
	var sawAPIKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAPIKey = r.Header["X-Api-Key"]
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"agentId": "a-1", "jobId": "j-1"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), testResource(metadata.TypeAgent), testArchive())
	require.NoError(t, err)
	assert.False(t, sawAPIKey)
}

func TestClientSubmitMakesExactlyOneAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "transient"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Submit(context.Background(), testResource(metadata.TypeModel), testArchive())

	var serverErr *errors.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, 1, attempts)
}

func TestClientSubmitServerErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{"json error key", http.StatusBadRequest, `{"error": "invalid archive"}`, "invalid archive"},
		{"json message key", http.StatusForbidden, `{"message": "forbidden"}`, "forbidden"},
		{"plain text body", http.StatusInternalServerError, "boom", "boom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Submit(context.Background(), testResource(metadata.TypeAgent), testArchive())

			var serverErr *errors.ServerError
			require.True(t, errors.As(err, &serverErr))
			assert.Equal(t, tc.status, serverErr.StatusCode)
			assert.Equal(t, tc.reason, serverErr.Reason)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tc.status))
		})
	}
}

func TestClientSubmitUnreachableHub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Submit(context.Background(), testResource(metadata.TypeAgent), testArchive())

	var requestErr *errors.RequestError
	require.True(t, errors.As(err, &requestErr))
	assert.Contains(t, requestErr.URL, "/api/agents")
}

func TestClientSubmitResponseErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"body is not json", "created"},
		{"identifier missing", `{"status": "ok", "jobId": "j-1"}`},
		{"identifier of another type", `{"modelId": "m-1", "jobId": "j-1"}`},
		{"jobId missing", `{"agentId": "a-1"}`},
		{"jobId empty", `{"agentId": "a-1", "jobId": ""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Submit(context.Background(), testResource(metadata.TypeAgent), testArchive())

			var responseErr *errors.ResponseError
			require.True(t, errors.As(err, &responseErr))
		})
	}

	t.Run("generic resourceId is accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"resourceId": "r-7", "jobId": "j-7"}`))
		}))
		defer srv.Close()

		receipt, err := NewClient(srv.URL).Submit(context.Background(), testResource(metadata.TypeDataset), testArchive())
		require.NoError(t, err)
		assert.Equal(t, "r-7", receipt.ResourceID)
		assert.Equal(t, "j-7", receipt.JobID)
	})
}

func TestClientSubmitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"agentId": "a-1", "jobId": "j-1"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL).Submit(ctx, testResource(metadata.TypeAgent), testArchive())

	var requestErr *errors.RequestError
	require.True(t, errors.As(err, &requestErr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClientSubmitDrivesProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"agentId": "a-1", "jobId": "j-1"}`))
	}))
	defer srv.Close()

	var gotLength int64
	var gotName string
	cleaned := false
	client := NewClient(srv.URL, WithProgress(func(contentLength int64, body io.Reader, name string) (io.Reader, func()) {
		gotLength = contentLength
		gotName = name
		return body, func() { cleaned = true }
	}))

	_, err := client.Submit(context.Background(), testResource(metadata.TypeAgent), testArchive())
	require.NoError(t, err)

	assert.Positive(t, gotLength)
	assert.Equal(t, "resource.zip", gotName)
	assert.True(t, cleaned)
}

func TestClientSubmitUnknownType(t *testing.T) {
	_, err := NewClient(DefaultBaseURL).Submit(context.Background(), &metadata.Resource{Type: "ROBOT"}, testArchive())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROBOT")
}
