package support

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	// Register decoders for the cropped-file dimension checks.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// theCommandShouldSucceed verifies the command succeeded.
func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("command failed with exit code %d: %w\nOutput: %s",
			testCtx.LastExitCode, testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

// theCommandShouldFail verifies the command failed.
func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command succeeded when it should have failed\nOutput: %s", testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldContain verifies the output contains specific text.
func (testCtx *TestContext) theOutputShouldContain(expectedText string) error {
	if !strings.Contains(testCtx.LastOutput, expectedText) {
		return fmt.Errorf("output does not contain '%s'\nActual output: %s", expectedText, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldNotContain verifies the output lacks specific text.
func (testCtx *TestContext) theOutputShouldNotContain(text string) error {
	if strings.Contains(testCtx.LastOutput, text) {
		return fmt.Errorf("output contains '%s' but should not\nActual output: %s", text, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldBeValidJSON verifies the output is valid JSON.
func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	// Extract JSON from output (skip any preceding log lines)
	output := strings.TrimSpace(testCtx.LastOutput)
	jsonStart := strings.IndexAny(output, "{[")
	if jsonStart < 0 {
		return fmt.Errorf("no JSON found in output: %s", output)
	}

	var parsed any
	if err := json.Unmarshal([]byte(output[jsonStart:]), &parsed); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\nOutput: %s", err, output)
	}
	return nil
}

// theFileShouldExist verifies a file exists under the temp directory.
func (testCtx *TestContext) theFileShouldExist(name string) error {
	path := filepath.Join(testCtx.TempDir, name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected file %s: %w", name, err)
	}
	return nil
}

// theFileShouldBeAnImage verifies a produced file decodes with the
// expected pixel dimensions.
func (testCtx *TestContext) theFileShouldBeAnImage(name string, width, height int) error {
	path := filepath.Join(testCtx.TempDir, name)
	f, err := os.Open(path) //nolint:gosec // test fixture path under temp dir
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if cfg.Width != width || cfg.Height != height {
		return fmt.Errorf("%s is %dx%d, expected %dx%d", name, cfg.Width, cfg.Height, width, height)
	}
	return nil
}

// RegisterOutputSteps registers output assertion steps.
func (testCtx *TestContext) RegisterOutputSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should be a (\d+)x(\d+) image$`, testCtx.theFileShouldBeAnImage)
}
