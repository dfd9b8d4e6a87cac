package hub

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog/log"

	"github.com/proofai/proofai-cli/internal/archive"
	"github.com/proofai/proofai-cli/internal/metadata"
	"github.com/proofai/proofai-cli/util/common/progress"
)

// Submitter is the hub-facing half of the upload pipeline. *Client
// implements it.
type Submitter interface {
	Submit(ctx context.Context, res *metadata.Resource, a *archive.Archive) (*Receipt, error)
}

// Result carries everything the CLI needs to render an upload outcome.
// Receipt is nil after Prepare.
type Result struct {
	Resource *metadata.Resource
	Archive  *archive.Archive
	Receipt  *Receipt
}

// Orchestrator sequences the upload pipeline: validate the descriptor,
// package the directory, submit the archive. Stage failures pass through
// unchanged so the caller can still tell a validation failure from a server
// rejection.
type Orchestrator struct {
	client   Submitter
	reporter progress.Reporter
	excludes []string
}

// NewOrchestrator wires a pipeline around the given submitter. A nil
// reporter runs the pipeline silently.
func NewOrchestrator(client Submitter, reporter progress.Reporter, excludes []string) *Orchestrator {
	if reporter == nil {
		reporter = progress.Nop
	}
	return &Orchestrator{
		client:   client,
		reporter: reporter,
		excludes: excludes,
	}
}

// Prepare runs the local half of the pipeline: validate projectDir's
// descriptor and package the directory. Nothing is sent to the hub and
// nothing is written to disk.
func (o *Orchestrator) Prepare(ctx context.Context, projectDir string) (*Result, error) {
	o.reporter.Step("Validating metadata")
	res, err := metadata.Validate(filepath.Join(projectDir, metadata.DescriptorName))
	if err != nil {
		o.reporter.Error("Metadata validation failed")
		return nil, err
	}
	log.Debug().
		Str("type", res.Type.String()).
		Str("name", res.Name).
		Msg("metadata validated")

	o.reporter.Step(fmt.Sprintf("Packaging %s", res.Name))
	a, err := archive.Package(projectDir, o.excludes)
	if err != nil {
		o.reporter.Error("Packaging failed")
		return nil, err
	}
	log.Debug().
		Int("entries", len(a.Entries)).
		Int64("bytes", a.Size()).
		Str("sha256", a.Digest).
		Msg("archive built")

	return &Result{Resource: res, Archive: a}, nil
}

// Upload runs the whole pipeline against projectDir.
func (o *Orchestrator) Upload(ctx context.Context, projectDir string) (*Result, error) {
	o.reporter.Start(fmt.Sprintf("Uploading %s", projectDir))

	result, err := o.Prepare(ctx, projectDir)
	if err != nil {
		return nil, err
	}

	o.reporter.Step(fmt.Sprintf("Submitting %s (%s)", result.Resource.Name,
		bytesize.New(float64(result.Archive.Size()))))
	receipt, err := o.client.Submit(ctx, result.Resource, result.Archive)
	if err != nil {
		o.reporter.Error("Submission failed")
		return nil, err
	}
	result.Receipt = receipt
	log.Debug().
		Str("resourceId", receipt.ResourceID).
		Str("jobId", receipt.JobID).
		Msg("hub acknowledged upload")

	o.reporter.Success(fmt.Sprintf("Successfully uploaded %s", result.Resource.Name))
	o.reporter.End()
	return result, nil
}
