// Package upload implements the upload command: validate the project's
// descriptor, package the directory into a deterministic archive, and submit
// it to the Agent Hub endpoint for the declared resource type.
package upload

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/config"
	"github.com/proofai/proofai-cli/internal/archive"
	hubconfig "github.com/proofai/proofai-cli/internal/config"
	"github.com/proofai/proofai-cli/internal/hub"
	"github.com/proofai/proofai-cli/internal/style"
	"github.com/proofai/proofai-cli/internal/terminal"
	"github.com/proofai/proofai-cli/util/common/printer"
	"github.com/proofai/proofai-cli/util/common/progress"
)

// uploadResult is the machine-readable shape printed under --json.
type uploadResult struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	ResourceID string `json:"resourceId"`
	JobID      string `json:"jobId"`
}

// NewUploadCmd creates the upload command.
func NewUploadCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		dir         string
		excludes    []string
		dryRun      bool
		keepArchive string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Package and upload the project to the Agent Hub",
		Long: heredoc.Doc(`
			Validate the project's metadata.json, package the directory into a
			zip archive, and submit it to the Agent Hub endpoint for the
			declared resource type (AGENT, MODEL, or DATASET).

			The hub base URL resolves from --api-url, then PROOFAI_API_URL,
			then the api_url key of .proofai.yaml (project directory first,
			then home), and finally http://localhost:3000. An API key from
			PROOFAI_API_KEY or the config file is sent as x-api-key.

			The archive always skips .git, __pycache__, venv, hidden files,
			and a stale resource.zip. The exclude list of .proofai.yaml and
			repeated --exclude flags add further glob patterns.
		`),
		Example: heredoc.Doc(`
			# Upload the project in the current directory
			$ proofai upload

			# List what would be uploaded without sending anything
			$ proofai upload --dry-run

			# Upload another directory to a specific hub
			$ proofai upload --dir ./my_agent --api-url https://hub.example.com
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings, err := hubconfig.Resolve(dir, config.Global.APIBaseURL)
			if err != nil {
				return err
			}
			log.Debug().
				Str("url", settings.APIURL).
				Str("source", settings.Source).
				Msg("resolved hub endpoint")

			excludePatterns := append(settings.Exclude, excludes...)

			if dryRun {
				return runDryRun(cmd, dir, excludePatterns, keepArchive)
			}

			term := terminal.Detect(config.Global.NoColor, config.Global.JSON)

			reporter := f.Reporter()
			if config.Global.JSON {
				reporter = progress.Nop
			}

			opts := []hub.Option{hub.WithTimeout(timeout)}
			if term.IsTerminal && !config.Global.JSON {
				opts = append(opts, hub.WithProgress(progress.Reader))
			}
			client := f.HubClient(settings, opts...)

			orch := hub.NewOrchestrator(client, reporter, excludePatterns)
			result, err := orch.Upload(ctx, dir)
			if err != nil {
				return err
			}

			if keepArchive != "" {
				if err := result.Archive.Save(keepArchive); err != nil {
					return err
				}
				log.Debug().Str("path", keepArchive).Msg("archive written")
			}

			return printReceipt(cmd, result)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory to upload")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Glob pattern to exclude from the archive (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and package without uploading")
	cmd.Flags().StringVar(&keepArchive, "keep-archive", "", "Also write the packaged archive to this path")
	cmd.Flags().DurationVar(&timeout, "timeout", hub.DefaultTimeout, "Upload attempt timeout")

	cmd.SilenceErrors = true

	return cmd
}

// entryRow is one dry-run table row, sizes pre-rendered for display.
type entryRow struct {
	Name string `json:"entry"`
	Size string `json:"size"`
}

func runDryRun(cmd *cobra.Command, dir string, excludes []string, keepArchive string) error {
	orch := hub.NewOrchestrator(nil, progress.Nop, excludes)
	result, err := orch.Prepare(cmd.Context(), dir)
	if err != nil {
		return err
	}

	entries, err := archive.Inspect(result.Archive.Reader())
	if err != nil {
		return err
	}

	if keepArchive != "" {
		if err := result.Archive.Save(keepArchive); err != nil {
			return err
		}
	}

	if config.Global.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Type    string              `json:"type"`
			Name    string              `json:"name"`
			SHA256  string              `json:"sha256"`
			Entries []archive.EntryInfo `json:"entries"`
		}{result.Resource.Type.String(), result.Resource.Name, result.Archive.Digest, entries})
	}

	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entryRow{
			Name: e.Name,
			Size: bytesize.New(float64(e.Size)).String(),
		})
	}
	caption := fmt.Sprintf("%d files, %s total (sha256 %s). Nothing uploaded.",
		len(entries), bytesize.New(float64(result.Archive.Size())), result.Archive.Digest)
	return printer.PrintTableWithOptions(rows, printer.TableOptions{
		Columns: []printer.Column{{Field: "entry", Header: "Entry"}, {Field: "size", Header: "Size"}},
		Caption: caption,
		Out:     cmd.OutOrStdout(),
	})
}

func printReceipt(cmd *cobra.Command, result *hub.Result) error {
	if config.Global.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(uploadResult{
			Type:       result.Resource.Type.String(),
			Name:       result.Resource.Name,
			ResourceID: result.Receipt.ResourceID,
			JobID:      result.Receipt.JobID,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Upload complete\n", style.SuccessIcon())
	fmt.Fprintf(out, "  Type:        %s\n", result.Resource.Type)
	fmt.Fprintf(out, "  Resource ID: %s\n", style.Code.Render(result.Receipt.ResourceID))
	fmt.Fprintf(out, "  Job ID:      %s\n", style.Code.Render(result.Receipt.JobID))
	return nil
}
