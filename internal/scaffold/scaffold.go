// Package scaffold creates new resource project directories: a descriptor
// declaring the resource's identity, plus the starter files for its kind.
// A scaffolded project passes metadata validation as-is, so create followed
// by upload works without edits.
package scaffold

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/proofai/proofai-cli/internal/metadata"
	"github.com/proofai/proofai-cli/util/common/errors"
	"github.com/proofai/proofai-cli/util/common/fileutil"
)

//go:embed templates
var templatesFS embed.FS

// starterFiles lists the embedded starter files per resource type, keyed by
// output file name. Models and datasets start with the descriptor only.
var starterFiles = map[metadata.ResourceType]map[string]string{
	metadata.TypeAgent: {
		"main.py": "templates/agent/main.py",
	},
}

// Options configures one project scaffold.
type Options struct {
	// Name is the human-readable project name; the directory name is
	// derived from it via Slug.
	Name string

	// Type selects the resource kind and its starter files.
	Type metadata.ResourceType

	// Dir is the parent directory to create the project under.
	// Defaults to the current directory.
	Dir string

	// Force writes into an existing project directory instead of
	// failing.
	Force bool
}

// Project describes what Create produced.
type Project struct {
	// Dir is the created project directory.
	Dir string

	// Files lists the written files, relative to Dir, sorted.
	Files []string
}

// descriptor is the on-disk shape of a freshly scaffolded metadata.json.
// Every key is written, including the empty tags list, so the file shows
// users what they can fill in.
type descriptor struct {
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Type        string   `json:"type"`
	CreatedAt   string   `json:"created_at"`
}

// Slug derives the project directory name: spaces become underscores and
// the result is lowercased, so "My Agent" lives in my_agent/.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// Create scaffolds a project for opts and reports what it wrote. An
// existing directory is refused unless opts.Force is set.
func Create(opts Options) (*Project, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if !opts.Type.Valid() {
		return nil, fmt.Errorf("invalid resource type %q, must be AGENT, MODEL, or DATASET", opts.Type)
	}

	parent := opts.Dir
	if parent == "" {
		parent = "."
	}
	dir := filepath.Join(parent, Slug(opts.Name))

	if _, err := os.Stat(dir); err == nil && !opts.Force {
		return nil, fmt.Errorf("directory %q already exists (use --force to overwrite)", dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewFileError(dir, "create", err)
	}

	project := &Project{Dir: dir}

	data, err := renderDescriptor(opts)
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteFile(filepath.Join(dir, metadata.DescriptorName), data); err != nil {
		return nil, err
	}
	project.Files = append(project.Files, metadata.DescriptorName)

	for name, templatePath := range starterFiles[opts.Type] {
		content, err := templatesFS.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", templatePath, err)
		}
		if err := fileutil.WriteFile(filepath.Join(dir, name), content); err != nil {
			return nil, err
		}
		project.Files = append(project.Files, name)
	}
	sort.Strings(project.Files)

	return project, nil
}

func renderDescriptor(opts Options) ([]byte, error) {
	desc := descriptor{
		Name:        opts.Name,
		Author:      currentUser(),
		Description: fmt.Sprintf("A ProofAI %s", strings.ToLower(opts.Type.String())),
		Tags:        []string{},
		Type:        opts.Type.String(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
