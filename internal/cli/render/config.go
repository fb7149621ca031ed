package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "No %s file found\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintln(r.out, "📋 Local config:")
		fmt.Fprintf(r.out, "Namespace: %s\n", orNotSet(result.Config.Namespace))
		fmt.Fprintf(r.out, "Network:   %s\n", orNotSet(result.Config.Network))
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}

	fmt.Fprintln(r.out, "\n🔧 Effective:")
	fmt.Fprintf(r.out, "Namespace: %s\n", result.Namespace)
	fmt.Fprintf(r.out, "Network:   %s\n", orNotSet(result.Network))
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNamespace:
		fmt.Fprintln(r.out, FormatSuccess("Removed namespace, falling back to scubr.toml or 'default'"))
	case config.ConfigKeyNetwork:
		fmt.Fprintln(r.out, FormatSuccess("Removed network from config (pass --network or pick one when prompted)"))
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
