package questions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/qflow/internal/qtree"
	"github.com/agentx-labs/qflow/internal/runtime"
	"github.com/agentx-labs/qflow/internal/validation"
)

// Answer keys of the project questionnaire.
const (
	Capabilities   = "capabilities"
	BotHost        = "bot-host"
	BotTriggers    = "bot-triggers"
	Language       = "language"
	RuntimeVersion = "runtime-version"
	NodeVersion    = "node-version"
	AppName        = "app-name"
	Folder         = "folder"
	TargetDir      = "target-dir"
)

// Capability ids.
const (
	CapabilityTab              = "tab"
	CapabilityBot              = "bot"
	CapabilityMessageExtension = "message-extension"
)

var capabilityOptions = qtree.ItemOptions(
	qtree.OptionItem{ID: CapabilityTab, Label: "Tab", Description: "UI embedded in a channel or chat"},
	qtree.OptionItem{ID: CapabilityBot, Label: "Bot", Description: "Conversational agent"},
	qtree.OptionItem{ID: CapabilityMessageExtension, Label: "Message extension", Description: "Search and actions from the compose box"},
)

// VersionDetector reports the installed version of a runtime ("go" or
// "node").
type VersionDetector func(ctx context.Context, name string) (*semver.Version, error)

// ProjectOption configures NewProject.
type ProjectOption func(*projectConfig)

type projectConfig struct {
	detect VersionDetector
}

// WithVersionDetector replaces toolchain detection, which otherwise runs the
// installed go and node binaries.
func WithVersionDetector(d VersionDetector) ProjectOption {
	return func(c *projectConfig) { c.detect = d }
}

func detectInstalled(ctx context.Context, name string) (*semver.Version, error) {
	return runtime.DispatchRuntime(name).Version(ctx)
}

// NewProject returns the questionnaire of the `qflow new` command. It asks
// for the capabilities of the project, hosting details when a bot is
// involved, the language and its runtime, the application name and the
// folder to create it in, then checks that the target directory is free.
func NewProject(opts ...ProjectOption) *qtree.Node {
	cfg := projectConfig{detect: detectInstalled}
	for _, opt := range opts {
		opt(&cfg)
	}

	root := qtree.NewGroup()

	caps := qtree.MultiSelect(Capabilities, "Select capabilities", capabilityOptions)
	caps.Default = qtree.Literal([]string{CapabilityTab})
	caps.Validation = &validation.Schema{MinItems: validation.Int(1), Message: "select at least one capability"}
	capsNode := root.AddChild(qtree.NewNode(caps))

	bot := capsNode.AddChild(qtree.NewGroup()).When(&validation.Schema{
		ContainsAny: []any{CapabilityBot, CapabilityMessageExtension},
	})
	host := qtree.SingleSelect(BotHost, "Where should the bot run?", qtree.ItemOptions(
		qtree.OptionItem{ID: "app-service", Label: "App Service"},
		qtree.OptionItem{ID: "functions", Label: "Functions"},
	))
	host.Default = qtree.Literal("app-service")
	hostNode := bot.AddChild(qtree.NewNode(host))

	triggers := qtree.MultiSelect(BotTriggers, "Select function triggers", qtree.StringOptions("http", "timer", "queue"))
	triggers.Default = qtree.Literal([]string{"http"})
	hostNode.AddChild(qtree.NewNode(triggers)).When(&validation.Schema{Equals: "functions"})

	lang := &qtree.SingleSelectQuestion{
		QuestionBase:     qtree.QuestionBase{Name: Language, Title: qtree.Literal("Programming language")},
		Options:          qtree.Computed(languageOptions),
		Default:          qtree.Literal("typescript"),
		ReturnObject:     true,
		SkipSingleOption: true,
	}
	langNode := root.AddChild(qtree.NewNode(lang))

	goVersion := qtree.Text(RuntimeVersion, "Go version")
	goVersion.Default = qtree.Computed(cfg.installedOr(runtime.RuntimeGo, ">=1.21", "1.25"))
	goVersion.Validation = &validation.Schema{Semver: ">=1.21", Message: "Go 1.21 or newer is required"}
	langNode.AddChild(qtree.NewNode(goVersion)).When(&validation.Schema{Equals: "go"})

	nodeVersion := qtree.Text(NodeVersion, "Node.js version")
	nodeVersion.Default = qtree.Computed(cfg.installedOr(runtime.RuntimeNode, ">=18", "20"))
	nodeVersion.Validation = &validation.Schema{Semver: ">=18", Message: "Node.js 18 or newer is required"}
	langNode.AddChild(qtree.NewNode(nodeVersion)).When(&validation.Schema{Enum: []any{"typescript", "javascript"}})

	name := qtree.Text(AppName, "Application name")
	name.Placeholder = qtree.Literal("my-app")
	name.Prompt = qtree.Computed(func(_ context.Context, a qtree.Answers) (string, error) {
		return fmt.Sprintf("Letters, digits and dashes; used as the %s package name", languageLabel(a)), nil
	})
	name.Validation = &validation.Schema{
		Pattern: `^[a-zA-Z][a-zA-Z0-9-]{2,31}$`,
		Message: "start with a letter; 3-32 letters, digits or dashes",
	}
	root.AddChild(qtree.NewNode(name))

	folder := qtree.Folder(Folder, "Workspace folder")
	folder.Default = qtree.Literal(".")
	root.AddChild(qtree.NewNode(folder))

	root.AddChild(qtree.NewNode(qtree.Func(TargetDir, checkTargetDir)))

	return root
}

// languageOptions offers TypeScript only to message-extension-only
// projects; other capabilities can be built in any supported language.
func languageOptions(_ context.Context, a qtree.Answers) (qtree.OptionList, error) {
	caps := a.Strings(Capabilities)
	ts := qtree.OptionItem{ID: "typescript", Label: "TypeScript"}
	if len(caps) == 1 && caps[0] == CapabilityMessageExtension {
		return qtree.ItemOptions(ts), nil
	}
	opts := []qtree.OptionItem{ts, {ID: "javascript", Label: "JavaScript"}}
	if slices.Contains(caps, CapabilityBot) || slices.Contains(caps, CapabilityTab) {
		opts = append(opts, qtree.OptionItem{ID: "go", Label: "Go"})
	}
	return qtree.ItemOptions(opts...), nil
}

// installedOr defaults a runtime question to the installed toolchain
// version when it satisfies constraint, and to fallback otherwise.
func (c projectConfig) installedOr(name, constraint, fallback string) qtree.ComputeFunc[string] {
	return func(ctx context.Context, _ qtree.Answers) (string, error) {
		v, err := c.detect(ctx, name)
		if err != nil {
			return fallback, nil
		}
		cons, err := semver.NewConstraint(constraint)
		if err != nil {
			return "", err
		}
		if !cons.Check(v) {
			return fallback, nil
		}
		return fmt.Sprintf("%d.%d", v.Major(), v.Minor()), nil
	}
}

func languageLabel(a qtree.Answers) string {
	if item, ok := a[Language].(qtree.OptionItem); ok {
		return item.Label
	}
	return "project"
}

// checkTargetDir rejects a target directory that already exists and
// returns its path.
func checkTargetDir(_ context.Context, a qtree.Answers) (any, error) {
	name := a.String(AppName)
	if name == "" {
		return nil, errors.New("application name is not set")
	}
	dir := filepath.Join(a.String(Folder), name)
	_, err := os.Stat(dir)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s already exists", dir)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("checking %s: %w", dir, err)
	}
	return dir, nil
}
