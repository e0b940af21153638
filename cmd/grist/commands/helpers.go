// Package commands implements the subcommands of the grist CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gristlabs/grist-go/pkg/grist"
	"github.com/gristlabs/grist-go/pkg/gristclient"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = 2

	dateFormat = "2006-01-02"
)

// CreateClient builds a grist.Client from the resolved CLI configuration.
func CreateClient(ctx context.Context) (grist.Client, error) {
	config := &grist.Config{
		Server: viper.GetString("server"),
		APIKey: viper.GetString("api-key"),
		DryRun: viper.GetBool("dry-run"),
		Debug:  viper.GetBool("verbose"),
	}

	if config.DryRun || config.Debug {
		config.Logger = grist.NewStderrLogger()
	}

	client, err := gristclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// StandardJSONRenderer writes the value to stdout as indented JSON.
func StandardJSONRenderer(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes the value to stdout as YAML.
func StandardYAMLRenderer(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return encoder.Close()
}
