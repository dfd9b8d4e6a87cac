package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/proofai/proofai-cli/internal/style"
)

// ConfirmOverwrite warns that dir already holds files and asks whether to
// replace them. Only an explicit yes returns true.
func ConfirmOverwrite(dir string) (bool, error) {
	fmt.Println(style.Warning.Render("⚠  Directory " + style.Bold.Render(dir) + " already exists"))
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Overwrite %q?", dir)).
			Description("Existing files in the directory will be replaced.").
			Affirmative("Yes, overwrite").
			Negative("No, cancel").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// PromptProjectName asks for the name of a new project. kind is the
// lowercase resource word shown in the prompt.
func PromptProjectName(kind string) (string, error) {
	var name string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New " + kind + " name").
			Description("The project directory name is derived from it.").
			Placeholder("My " + kind).
			Value(&name),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return name, nil
}
