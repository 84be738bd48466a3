package runtime

import (
	"context"

	"github.com/Masterminds/semver/v3"
)

// GoRuntime detects the Go toolchain.
type GoRuntime struct {
	// Bin overrides the binary name; defaults to "go".
	Bin string
}

// Version returns the version reported by `go env GOVERSION`.
func (g *GoRuntime) Version(ctx context.Context) (*semver.Version, error) {
	bin := g.Bin
	if bin == "" {
		bin = "go"
	}
	out, err := output(ctx, bin, "env", "GOVERSION")
	if err != nil {
		return nil, err
	}
	return parseSemver(out, "go")
}
