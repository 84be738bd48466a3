package runtime

import (
	"context"

	"github.com/Masterminds/semver/v3"
)

// NodeRuntime detects the Node.js toolchain.
type NodeRuntime struct {
	// Bin overrides the binary name; defaults to "node".
	Bin string
}

// Version returns the version reported by `node --version`.
func (n *NodeRuntime) Version(ctx context.Context) (*semver.Version, error) {
	bin := n.Bin
	if bin == "" {
		bin = "node"
	}
	out, err := output(ctx, bin, "--version")
	if err != nil {
		return nil, err
	}
	return parseSemver(out, "v")
}
