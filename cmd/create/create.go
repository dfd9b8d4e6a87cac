// Package create implements the create-agent, create-model, and
// create-dataset commands. Each scaffolds a project directory that passes
// metadata validation as-is, so upload works before any editing.
package create

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/config"
	"github.com/proofai/proofai-cli/internal/metadata"
	"github.com/proofai/proofai-cli/internal/scaffold"
	"github.com/proofai/proofai-cli/internal/style"
	"github.com/proofai/proofai-cli/internal/terminal"
	"github.com/proofai/proofai-cli/internal/tui"
)

// NewAgentCmd creates the create-agent command.
func NewAgentCmd(f *cmdutils.Factory) *cobra.Command {
	return newCreateCmd(f, metadata.TypeAgent)
}

// NewModelCmd creates the create-model command.
func NewModelCmd(f *cmdutils.Factory) *cobra.Command {
	return newCreateCmd(f, metadata.TypeModel)
}

// NewDatasetCmd creates the create-dataset command.
func NewDatasetCmd(f *cmdutils.Factory) *cobra.Command {
	return newCreateCmd(f, metadata.TypeDataset)
}

// createResult is the machine-readable shape printed under --json.
type createResult struct {
	Type  string   `json:"type"`
	Name  string   `json:"name"`
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

func newCreateCmd(f *cmdutils.Factory, kind metadata.ResourceType) *cobra.Command {
	var (
		parentDir string
		force     bool
	)

	kindWord := strings.ToLower(kind.String())

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("create-%s [name]", kindWord),
		Short: fmt.Sprintf("Create a new %s project", kindWord),
		Long: heredoc.Docf(`
			Scaffold a new %s project directory.

			The directory name is derived from the project name: spaces become
			underscores and the result is lowercased. The directory is created
			with a metadata.json descriptor that already passes validation, so
			'proofai upload' works on it without edits.

			When the name argument is omitted and the session is interactive,
			the command prompts for it.
		`, kindWord),
		Example: heredoc.Docf(`
			# Scaffold my_%s/ in the current directory
			$ proofai create-%s "My %s"

			# Prompt for the name
			$ proofai create-%s
		`, kindWord, kindWord, kind.String(), kindWord),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := terminal.Detect(config.Global.NoColor, config.Global.JSON)

			var name string
			if len(args) > 0 {
				name = args[0]
			} else if term.InteractiveEnabled {
				input, err := tui.PromptProjectName(kindWord)
				if err != nil {
					return err
				}
				name = input
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("%s name is required (pass it as an argument)", kindWord)
			}

			// Resolve the overwrite decision before scaffolding so the
			// interactive prompt fires instead of a hard failure.
			target := filepath.Join(parentDir, scaffold.Slug(name))
			if _, err := os.Stat(target); err == nil && !force {
				if !term.InteractiveEnabled {
					return fmt.Errorf("directory %q already exists (use --force to overwrite)", target)
				}
				confirmed, err := tui.ConfirmOverwrite(target)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), style.DimText.Render("Cancelled."))
					return nil
				}
				force = true
			}

			project, err := scaffold.Create(scaffold.Options{
				Name:  name,
				Type:  kind,
				Dir:   parentDir,
				Force: force,
			})
			if err != nil {
				return err
			}

			if config.Global.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(createResult{
					Type:  kind.String(),
					Name:  name,
					Dir:   project.Dir,
					Files: project.Files,
				})
			}

			printProject(cmd, kind, project)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentDir, "dir", ".", "Parent directory for the new project")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the project directory if it already exists")

	cmd.SilenceErrors = true

	return cmd
}

// fileNotes describes each scaffolded file in the success summary.
var fileNotes = map[string]string{
	"main.py": "Agent implementation file",
}

func printProject(cmd *cobra.Command, kind metadata.ResourceType, project *scaffold.Project) {
	out := cmd.OutOrStdout()
	kindWord := strings.ToLower(kind.String())

	fmt.Fprintf(out, "%s Created %s project in '%s'\n", style.SuccessIcon(), kindWord, project.Dir)
	for _, file := range project.Files {
		note, ok := fileNotes[file]
		if file == metadata.DescriptorName {
			note, ok = fmt.Sprintf("Basic %s information", kindWord), true
		}
		if ok {
			fmt.Fprintf(out, "  - %s: %s\n", style.Code.Render(file), note)
		} else {
			fmt.Fprintf(out, "  - %s\n", style.Code.Render(file))
		}
	}

	fmt.Fprintf(out, "\n%s\n", style.Subtitle.Render("Next steps:"))
	fmt.Fprintf(out, "  1. cd %s\n", project.Dir)
	fmt.Fprintf(out, "  2. Edit the files to implement your %s\n", kindWord)
	fmt.Fprintf(out, "  3. Run %s to upload your project\n", style.Code.Render("'proofai upload'"))
}
