package config

import (
	"context"
	"fmt"
	"net/url"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

// ModelLister fetches the models offered by the server at serverURL.
type ModelLister func(ctx context.Context, serverURL string) ([]api.Model, error)

// serverDefault is the model choice that leaves the pick to the server.
const serverDefault = "server default"

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(ctx context.Context, path string, listModels ModelLister) (*Config, error) {
	fmt.Println("Welcome to biobuilder! Let's connect to your BioBuilder server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Server URL.
	serverPrompt := promptui.Prompt{
		Label:    "BioBuilder server URL",
		Default:  DefaultServerURL,
		Validate: validateServerURL,
	}
	serverURL, err := serverPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	cfg.ServerURL = serverURL

	// 2. Default model, from what the server offers.
	models, err := listModels(ctx, serverURL)
	if err != nil {
		fmt.Printf("Could not load models from %s: %s\n", serverURL, api.Message(err, api.MsgLoadModelsFailed))
		fmt.Println("The server default will be used; change it later with --model or the model setting.")
	} else if len(models) > 0 {
		modelPrompt := promptui.Select{
			Label: "Select default model",
			Items: modelItems(models),
		}
		idx, _, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model selection: %w", err)
		}
		cfg.Model = modelAt(models, idx)
	}

	// 3. Export directory.
	exportPrompt := promptui.Prompt{
		Label:   "Directory for exported extraction results",
		Default: cfg.ExportDir,
	}
	exportDir, err := exportPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}
	cfg.ExportDir = exportDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// modelItems lists the select entries: the server default first, then
// each model by name.
func modelItems(models []api.Model) []string {
	items := []string{serverDefault}
	for _, m := range models {
		label := m.Name
		if label == "" {
			label = m.ID
		}
		items = append(items, label)
	}
	return items
}

// modelAt maps a select index back to a model id. Index 0 is the server default.
func modelAt(models []api.Model, idx int) string {
	if idx <= 0 || idx > len(models) {
		return ""
	}
	return models[idx-1].ID
}

func validateServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http or https URL")
	}
	return nil
}
