//go:build cucumber

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestUIModeScenarios runs the front-end selection scenarios.
func TestUIModeScenarios(t *testing.T) {
	featurePath := filepath.Join("testdata", "features", "ui_mode.feature")
	suite := godog.TestSuite{
		Name:                "ui-mode",
		ScenarioInitializer: InitializeUIModeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeUIModeScenario wires steps for ui mode scenarios.
func InitializeUIModeScenario(ctx *godog.ScenarioContext) {
	state := &uiModeScenarioState{}
	orig := isTerminal
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		isTerminal = func(any) bool { return state.isTTY }
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		isTerminal = orig
		return ctx, nil
	})

	ctx.Step(`^an interactive terminal$`, state.givenTTY)
	ctx.Step(`^output is piped$`, state.givenNonTTY)
	ctx.Step(`^the config sets ui mode "([^"]+)"$`, state.givenConfigMode)
	ctx.Step(`^I run "([^"]+)"$`, state.whenIRun)
	ctx.Step(`^the live UI is shown$`, state.thenLiveUIShown)
	ctx.Step(`^the output uses plain text$`, state.thenPlainOutput)
	ctx.Step(`^a warning mentions "([^"]+)"$`, state.thenWarningMentions)
}

type uiModeScenarioState struct {
	isTTY      bool
	configMode string
	decision   uiModeDecision
}

// reset clears scenario state.
func (s *uiModeScenarioState) reset() {
	s.isTTY = false
	s.configMode = ""
	s.decision = uiModeDecision{}
}

// givenTTY marks both streams as a terminal.
func (s *uiModeScenarioState) givenTTY() error {
	s.isTTY = true
	return nil
}

// givenNonTTY marks the streams as pipes.
func (s *uiModeScenarioState) givenNonTTY() error {
	s.isTTY = false
	return nil
}

// givenConfigMode sets ui.mode.
func (s *uiModeScenarioState) givenConfigMode(mode string) error {
	s.configMode = mode
	return nil
}

// whenIRun resolves the ui mode from the command line.
func (s *uiModeScenarioState) whenIRun(commandLine string) error {
	fields := strings.Fields(commandLine)
	flagMode := ""
	verbose := false
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "--verbose":
			verbose = true
		case "--ui":
			if i+1 < len(fields) {
				flagMode = fields[i+1]
				i++
			}
		}
	}
	decision, err := resolveUIMode(flagMode, s.configMode, verbose, nil, nil)
	if err != nil {
		return err
	}
	s.decision = decision
	return nil
}

// thenLiveUIShown asserts the live UI is enabled.
func (s *uiModeScenarioState) thenLiveUIShown() error {
	if !s.decision.useLive {
		return fmt.Errorf("expected live UI to be enabled")
	}
	return nil
}

// thenPlainOutput asserts the live UI is disabled.
func (s *uiModeScenarioState) thenPlainOutput() error {
	if s.decision.useLive {
		return fmt.Errorf("expected plain output")
	}
	return nil
}

// thenWarningMentions checks the fallback warning.
func (s *uiModeScenarioState) thenWarningMentions(text string) error {
	if !strings.Contains(s.decision.warning, text) {
		return fmt.Errorf("expected warning to mention %q, got %q", text, s.decision.warning)
	}
	return nil
}
