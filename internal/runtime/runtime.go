package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Toolchain reports the version of an installed language toolchain.
type Toolchain interface {
	Version(ctx context.Context) (*semver.Version, error)
}

// Supported runtime identifiers.
const (
	RuntimeNode = "node"
	RuntimeGo   = "go"
)

// DispatchRuntime returns the Toolchain for the given runtime identifier.
// Unknown identifiers yield a Toolchain that always fails.
func DispatchRuntime(runtime string) Toolchain {
	switch runtime {
	case RuntimeNode:
		return &NodeRuntime{}
	case RuntimeGo:
		return &GoRuntime{}
	default:
		return &unknownRuntime{name: runtime}
	}
}

// unknownRuntime is returned when the runtime identifier is not recognized.
type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) Version(context.Context) (*semver.Version, error) {
	return nil, fmt.Errorf("unknown runtime %q: supported runtimes are %q and %q", u.name, RuntimeNode, RuntimeGo)
}

// output runs bin with args and returns its trimmed stdout.
func output(ctx context.Context, bin string, args ...string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", bin, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", bin, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", bin, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// parseSemver strips a leading prefix such as "go" or "v" and parses the
// version string.
func parseSemver(version, prefix string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, prefix))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}
