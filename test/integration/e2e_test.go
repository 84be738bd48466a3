//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/qflow/internal/answers"
	"github.com/agentx-labs/qflow/internal/config"
	"github.com/agentx-labs/qflow/internal/definition"
	"github.com/agentx-labs/qflow/internal/prompt"
	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/questions"
	"github.com/agentx-labs/qflow/internal/walk"
)

const serviceDefinition = `name = "service"
version = "2.0.0"

[root]
type = "group"

[[root.children]]
type = "text"
name = "app-name"
default = "demo"

[[root.children]]
type = "singleSelect"
name = "language"
returnObject = true
options = [
  { id = "go", label = "Go" },
  { id = "ts", label = "TypeScript" },
]

  [[root.children.children]]
  type = "text"
  name = "go-version"
  default = "1.25"

    [root.children.children.condition]
    equals = "go"

    [root.children.children.validation]
    semver = ">=1.21"
`

// TestFullFlowInteractiveThenReplay walks a named definition interactively,
// saves the answers, and replays them headless to the same result.
func TestFullFlowInteractiveThenReplay(t *testing.T) {
	env := setupTestEnv(t)
	writeDefinition(t, env, "service.toml", serviceDefinition)

	// Step 1: Resolve and validate the definition from QFLOW_HOME.
	path := filepath.Join(config.DefinitionsDir(), "service.toml")
	result, err := definition.ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid definition, got %v", result.Issues)
	}

	def, err := definition.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Step 2: Walk interactively, going back once from go-version.
	tree, err := def.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	input := "billing\n1\nback\n1\n1.22\n"
	term := prompt.NewTerminal(strings.NewReader(input), &bytes.Buffer{})
	res := walk.New(walk.NewVisitor(term)).Traverse(context.Background(), tree, qtree.Answers{})
	if res.Kind != walk.ResultSuccess {
		t.Fatalf("interactive walk: %s %v", res.Kind, res.Err)
	}
	first := res.Value.(qtree.Answers)
	if got := first["language"].(qtree.OptionItem).ID; got != "go" {
		t.Errorf("language = %q, want go", got)
	}

	// Step 3: Save the answers.
	saved := filepath.Join(env.ProjectDir, "answers.yaml")
	f, err := os.Create(saved)
	if err != nil {
		t.Fatalf("creating answers file: %v", err)
	}
	if err := answers.Write(f, first, definition.FormatYAML); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f.Close()
	assertFileContains(t, saved, "go-version: \"1.22\"")

	// Step 4: Replay headless from the saved file on a fresh tree.
	preset, err := answers.Load(saved)
	if err != nil {
		t.Fatalf("answers.Load: %v", err)
	}
	tree, err = def.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res = walk.New(walk.NewVisitor(prompt.NewHeadless(preset))).Traverse(context.Background(), tree, qtree.Answers{})
	if res.Kind != walk.ResultSuccess {
		t.Fatalf("headless walk: %s %v", res.Kind, res.Err)
	}
	replayed := res.Value.(qtree.Answers)

	for _, key := range []string{"app-name", "go-version"} {
		if replayed[key] != first[key] {
			t.Errorf("%s: replayed %v, want %v", key, replayed[key], first[key])
		}
	}
	if replayed["language"].(qtree.OptionItem).ID != "go" {
		t.Errorf("replayed language = %v", replayed["language"])
	}
}

// TestFullFlowNewProject answers the built-in questionnaire headless and
// checks the target directory guard.
func TestFullFlowNewProject(t *testing.T) {
	env := setupTestEnv(t)

	preset := qtree.Answers{
		questions.Capabilities: []any{questions.CapabilityBot},
		questions.BotHost:      "functions",
		questions.Language:     "go",
		questions.AppName:      "echo",
		questions.Folder:       env.ProjectDir,
	}

	run := func() walk.InputResult {
		tree, err := qtree.Build(questions.NewProject())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return walk.New(walk.NewVisitor(prompt.NewHeadless(preset))).Traverse(context.Background(), tree, qtree.Answers{})
	}

	res := run()
	if res.Kind != walk.ResultSuccess {
		t.Fatalf("first walk: %s %v", res.Kind, res.Err)
	}
	target := res.Value.(qtree.Answers).String(questions.TargetDir)
	if target != filepath.Join(env.ProjectDir, "echo") {
		t.Errorf("target-dir = %q", target)
	}

	// Once the directory exists the func question stops the walk.
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	res = run()
	if res.Kind != walk.ResultError || !qtree.IsKind(res.Err, qtree.KindFuncFailed) {
		t.Errorf("expected FuncFailed, got %s %v", res.Kind, res.Err)
	}
}
