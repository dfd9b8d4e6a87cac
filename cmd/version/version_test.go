package version

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/config"
)

func TestUpgradeAvailable(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer release", "1.0.0", "v1.1.0", true},
		{"same version", "v2.0.0", "v2.0.0", false},
		{"running ahead of releases", "v2.1.0", "v2.0.0", false},
		{"dev build", "dev", "v0.5.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upgradeAvailable(tt.current, tt.latest))
		})
	}
}

func TestVersionCheck(t *testing.T) {
	config.Global.JSON = true
	defer func() { config.Global = config.GlobalFlags{} }()

	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"tag_name":"v9.9.9","html_url":"https://example.com/v9.9.9"}`))
	}))
	defer srv.Close()

	orig := releaseURL
	releaseURL = srv.URL
	defer func() { releaseURL = orig }()

	cmd := NewVersionCmd(cmdutils.NewFactory())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--check"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "application/vnd.github.v3+json", gotAccept)

	var info versionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "v9.9.9", info.Latest)
	require.NotNil(t, info.UpgradeAvailable)
	assert.True(t, *info.UpgradeAvailable)
	assert.Equal(t, "https://example.com/v9.9.9", info.ReleaseURL)
}

func TestVersionCheckFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	orig := releaseURL
	releaseURL = srv.URL
	defer func() { releaseURL = orig }()

	cmd := NewVersionCmd(cmdutils.NewFactory())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--check"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check for updates")
}

func TestVersionPlainOutput(t *testing.T) {
	cmd := NewVersionCmd(cmdutils.NewFactory())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "proofai version dev")
}
