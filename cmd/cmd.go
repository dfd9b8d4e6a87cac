// Package cmd assembles the proofai command tree.
package cmd

import (
	"os"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/cmd/create"
	"github.com/proofai/proofai-cli/cmd/upload"
	"github.com/proofai/proofai-cli/cmd/version"
	"github.com/proofai/proofai-cli/config"
	"github.com/proofai/proofai-cli/internal/style"
	"github.com/proofai/proofai-cli/internal/terminal"
	"github.com/proofai/proofai-cli/internal/tui"
)

// NewRootCmd builds the root command with all subcommands and persistent
// flags attached.
func NewRootCmd(factory *cmdutils.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "proofai",
		Short:         "CLI for the ProofAI Agent Hub",
		SilenceUsage:  true,
		SilenceErrors: true, //prevent duplicate printing of errors
		Long: heredoc.Doc(`
			ProofAI CLI scaffolds agent, model, and dataset projects and
			uploads them to the Agent Hub.

			Point it at a hub with --api-url or PROOFAI_API_URL; by default
			it talks to http://localhost:3000.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			termInfo := terminal.Detect(config.Global.NoColor, config.Global.JSON)
			style.Init(termInfo.ColorEnabled)

			// Set up logging based on verbose flag
			if config.Global.Verbose {
				logWriter := zerolog.ConsoleWriter{
					Out:        os.Stderr,
					TimeFormat: time.RFC3339,
					NoColor:    config.Global.NoColor,
				}
				log.Logger = log.Output(logWriter)
			} else {
				// Disable logging when verbose is not enabled
				log.Logger = zerolog.Nop()
			}

			return initProfiling()
		},

		PersistentPostRunE: func(*cobra.Command, []string) error {
			if err := flushProfiling(); err != nil {
				return err
			}
			return nil
		},
	}

	// Persistent flags available to all commands - bind them directly to global config
	rootCmd.PersistentFlags().StringVar(&config.Global.APIBaseURL, "api-url", "",
		"Agent Hub base URL (overrides PROOFAI_API_URL and .proofai.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&config.Global.Verbose, "verbose", "v", false,
		"Enable verbose logging to console")
	rootCmd.PersistentFlags().BoolVar(&config.Global.NoColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")
	rootCmd.PersistentFlags().BoolVar(&config.Global.JSON, "json", false,
		"Output results as JSON")

	rootCmd.AddCommand(create.NewAgentCmd(factory))
	rootCmd.AddCommand(create.NewModelCmd(factory))
	rootCmd.AddCommand(create.NewDatasetCmd(factory))
	rootCmd.AddCommand(upload.NewUploadCmd(factory))
	rootCmd.AddCommand(version.NewVersionCmd(factory))

	addProfilingFlags(rootCmd.PersistentFlags())

	// Apply styled help template when running in a colour-capable terminal
	termPreCheck := terminal.Detect(config.Global.NoColor, config.Global.JSON)
	style.Init(termPreCheck.ColorEnabled)
	if helpTpl := tui.StyledHelpTemplate(); helpTpl != "" {
		rootCmd.SetUsageTemplate(helpTpl)
	}

	return rootCmd
}
