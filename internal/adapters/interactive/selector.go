package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/scubr/scubr-migrate/internal/domain/config"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

// ErrNonInteractive is returned when a prompt is needed but prompting is disabled
var ErrNonInteractive = errors.New("interactive prompt not available in non-interactive mode")

// SelectorAdapter handles interactive prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

var (
	_ usecase.Confirmer       = (*SelectorAdapter)(nil)
	_ usecase.NetworkSelector = (*SelectorAdapter)(nil)
)

// NewSelectorAdapter creates a new selector adapter on the process terminal
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// Confirm asks a yes/no question; anything but "y" declines
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, ErrNonInteractive
	}

	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// SelectNetwork lets the user pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string) (string, error) {
	if len(networks) == 0 {
		return "", fmt.Errorf("no networks configured")
	}
	if len(networks) == 1 {
		return networks[0], nil
	}
	if s.config.NonInteractive {
		return "", ErrNonInteractive
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	sel := promptui.Select{
		Label:     "Select network",
		Items:     networks,
		Templates: templates,
		Size:      10,
		Searcher:  fuzzySearcher(networks),
	}

	index, _, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return networks[index], nil
}

// fuzzySearcher matches on substring first, then on fuzzy subsequence
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}
