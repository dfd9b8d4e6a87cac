package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/proofai/proofai-cli/cmd"
	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/config"
	"github.com/proofai/proofai-cli/internal/style"
	"github.com/proofai/proofai-cli/internal/terminal"
	"github.com/proofai/proofai-cli/util/common/errors"
)

func main() {
	factory := cmdutils.NewFactory()
	rootCmd := cmd.NewRootCmd(factory)

	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		os.Exit(1)
	}
}

func renderError(err error) {
	if config.Global.JSON {
		payload := struct {
			Error string `json:"error"`
			Stage string `json:"stage,omitempty"`
		}{Error: err.Error(), Stage: errors.Stage(err)}
		json.NewEncoder(os.Stderr).Encode(payload)
		return
	}

	termInfo := terminal.Detect(config.Global.NoColor, false)
	if termInfo.IsTerminal && termInfo.ColorEnabled {
		fmt.Fprintln(os.Stderr, style.Error.Render("Error: "+err.Error()))
		if unauthenticated(err) {
			fmt.Fprintln(os.Stderr, style.Hint("Set PROOFAI_API_KEY or pass --api-key to authenticate."))
		}
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if unauthenticated(err) {
			fmt.Fprintln(os.Stderr, "Set PROOFAI_API_KEY or pass --api-key to authenticate.")
		}
	}
}

func unauthenticated(err error) bool {
	var srvErr *errors.ServerError
	if !errors.As(err, &srvErr) {
		return false
	}
	return srvErr.StatusCode == http.StatusUnauthorized || srvErr.StatusCode == http.StatusForbidden
}
