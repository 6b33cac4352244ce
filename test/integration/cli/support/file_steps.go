package support

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"
	"gopkg.in/yaml.v3"

	"github.com/framecut/framecut/internal/testutil"
)

// writeFixture writes a file into the scenario's temp directory.
func (testCtx *TestContext) writeFixture(name string, data []byte) error {
	path := filepath.Join(testCtx.TempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write fixture %s: %w", name, err)
	}
	return nil
}

// aPNGImageNamed creates a PNG fixture with the given dimensions.
func (testCtx *TestContext) aPNGImageNamed(width, height int, name string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testutil.GradientImage(width, height)); err != nil {
		return fmt.Errorf("failed to encode PNG fixture: %w", err)
	}
	return testCtx.writeFixture(name, buf.Bytes())
}

// aJPEGImageNamed creates a JPEG fixture with the given dimensions.
func (testCtx *TestContext) aJPEGImageNamed(width, height int, name string) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testutil.GradientImage(width, height), nil); err != nil {
		return fmt.Errorf("failed to encode JPEG fixture: %w", err)
	}
	return testCtx.writeFixture(name, buf.Bytes())
}

// aTextFileNamed creates a fixture that is not an image at all.
func (testCtx *TestContext) aTextFileNamed(name string) error {
	return testCtx.writeFixture(name, []byte("this is plain text, not image data\n"))
}

// aTruncatedPNGNamed creates a PNG whose header survives but whose pixel
// data is cut off, so it decodes its dimensions but fails a full decode.
func (testCtx *TestContext) aTruncatedPNGNamed(name string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testutil.GradientImage(64, 64)); err != nil {
		return fmt.Errorf("failed to encode PNG fixture: %w", err)
	}
	return testCtx.writeFixture(name, buf.Bytes()[:40])
}

// aConfigFileLimitingFilesToBytes writes a config file with a file size cap.
func (testCtx *TestContext) aConfigFileLimitingFilesToBytes(name string, limit int) error {
	cfg := map[string]any{
		"gallery": map[string]any{
			"max_file_bytes": limit,
		},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config fixture: %w", err)
	}
	return testCtx.writeFixture(name, data)
}

// RegisterFileSteps registers fixture creation steps.
func (testCtx *TestContext) RegisterFileSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a (\d+)x(\d+) PNG image named "([^"]*)"$`, testCtx.aPNGImageNamed)
	sc.Step(`^a (\d+)x(\d+) JPEG image named "([^"]*)"$`, testCtx.aJPEGImageNamed)
	sc.Step(`^a text file named "([^"]*)"$`, testCtx.aTextFileNamed)
	sc.Step(`^a truncated PNG named "([^"]*)"$`, testCtx.aTruncatedPNGNamed)
	sc.Step(`^a config file "([^"]*)" limiting files to (\d+) bytes$`, testCtx.aConfigFileLimitingFilesToBytes)
}
