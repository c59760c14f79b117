package command

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

// runApp runs the application with a private HOME so no user configuration
// or history is touched. It returns what the command wrote to stdout.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runAppWith(t, App(), stdin, args...)
}

func runAppWith(t *testing.T, app *cli.App, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"domainmap"}, args...))
	return out.String(), err
}

// writeConfig writes a YAML configuration file into a temp dir.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domainmap.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
