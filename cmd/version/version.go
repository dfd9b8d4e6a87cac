// Package version implements the version command and its release check.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/config"
	"github.com/proofai/proofai-cli/internal/style"
	"github.com/proofai/proofai-cli/internal/terminal"
	"github.com/proofai/proofai-cli/internal/tui"
)

// Build metadata, set via ldflags during release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// releaseURL is a var so tests can point the check at a local server.
var releaseURL = "https://api.github.com/repos/proofai/proofai-cli/releases/latest"

// GitHubRelease represents a GitHub release
type GitHubRelease struct {
	TagName    string        `json:"tag_name"`
	Name       string        `json:"name"`
	Draft      bool          `json:"draft"`
	Prerelease bool          `json:"prerelease"`
	Assets     []GitHubAsset `json:"assets"`
	HTMLURL    string        `json:"html_url"`
}

// GitHubAsset represents a release asset
type GitHubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// versionInfo is the machine-readable shape printed under --json.
type versionInfo struct {
	Version          string `json:"version"`
	Commit           string `json:"commit"`
	Date             string `json:"date"`
	GoVersion        string `json:"goVersion"`
	Latest           string `json:"latest,omitempty"`
	UpgradeAvailable *bool  `json:"upgradeAvailable,omitempty"`
	ReleaseURL       string `json:"releaseUrl,omitempty"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd(f *cmdutils.Factory) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the proofai version",
		Long: heredoc.Doc(`
			Print the version, commit, and build date of this binary.

			With --check, query GitHub for the latest release and report
			whether a newer version is available.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				Commit:    Commit,
				Date:      Date,
				GoVersion: runtime.Version(),
			}

			if check {
				release, err := checkLatest(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to check for updates: %w", err)
				}
				upgrade := upgradeAvailable(Version, release.TagName)
				info.Latest = release.TagName
				info.UpgradeAvailable = &upgrade
				info.ReleaseURL = release.HTMLURL
			}

			if config.Global.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "proofai version %s (commit %s, built %s)\n", Version, Commit, Date)
			fmt.Fprintf(out, "Built with %s\n", runtime.Version())

			if check {
				if *info.UpgradeAvailable {
					fmt.Fprintf(out, "\n%s A newer version is available: %s (current %s)\n",
						style.WarningIcon(), info.Latest, Version)
					fmt.Fprintf(out, "Release notes: %s\n", info.ReleaseURL)
				} else {
					fmt.Fprintf(out, "\n%s You are on the latest version\n", style.SuccessIcon())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")

	cmd.SilenceErrors = true

	return cmd
}

// checkLatest fetches the latest release, behind a spinner on interactive
// sessions.
func checkLatest(ctx context.Context) (*GitHubRelease, error) {
	term := terminal.Detect(config.Global.NoColor, config.Global.JSON)
	if !term.InteractiveEnabled {
		return fetchLatestRelease(ctx, releaseURL)
	}

	v, err := tui.RunWithSpinner("Checking for updates", func() (interface{}, error) {
		return fetchLatestRelease(ctx, releaseURL)
	})
	if err != nil {
		return nil, err
	}
	return v.(*GitHubRelease), nil
}

// fetchLatestRelease queries the GitHub releases API. The check is an
// idempotent GET, so unlike uploads it retries transient failures.
func fetchLatestRelease(ctx context.Context, url string) (*GitHubRelease, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

// upgradeAvailable compares the running version against a release tag. A
// build without a valid semver version (dev builds) always counts as
// upgradable.
func upgradeAvailable(current, latest string) bool {
	cur := canonical(current)
	if !semver.IsValid(cur) {
		return true
	}
	return semver.Compare(canonical(latest), cur) > 0
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
