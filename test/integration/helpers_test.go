//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // QFLOW_HOME, contains definitions/ and config.yaml
	ProjectDir string // Folder new projects are placed in
}

// setupTestEnv creates isolated temp directories and points QFLOW_HOME at
// one of them. The env var is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("QFLOW_HOME", env.HomeDir)

	if err := os.MkdirAll(filepath.Join(env.HomeDir, "definitions"), 0755); err != nil {
		t.Fatalf("creating definitions dir: %v", err)
	}
	return env
}

// writeDefinition stores a named definition under QFLOW_HOME and returns
// its path.
func writeDefinition(t *testing.T, env *testEnv, name, content string) string {
	t.Helper()
	path := filepath.Join(env.HomeDir, "definitions", name)
	writeFile(t, path, content)
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q, got:\n%s", path, substr, data)
	}
}
