package cmdutils

import (
	"github.com/proofai/proofai-cli/internal/config"
	"github.com/proofai/proofai-cli/internal/hub"
	"github.com/proofai/proofai-cli/util/common/progress"
)

type Factory struct {
	// HubClient builds an Agent Hub client from resolved settings.
	HubClient func(settings *config.Settings, opts ...hub.Option) *hub.Client

	// Reporter builds the stage reporter for long-running commands.
	Reporter func() progress.Reporter
}

func NewFactory() *Factory {
	return &Factory{
		HubClient: func(settings *config.Settings, opts ...hub.Option) *hub.Client {
			if settings.APIKey != "" {
				opts = append(opts, hub.WithAPIKey(settings.APIKey))
			}
			return hub.NewClient(settings.APIURL, opts...)
		},
		Reporter: progress.NewAutoReporter,
	}
}
