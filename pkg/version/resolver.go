package version

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/flanksource/commons/logger"

	"github.com/flanksource/dotnet-install/pkg/types"
)

// QualityMinMajor is the first major version whose install scripts accept a
// build-quality tier. Older channels predate quality selection and ignore
// the flag.
const QualityMinMajor = 6

// IndexSource resolves the latest channel for a major version, typically
// backed by the remote releases index. Injected so resolution can be tested
// against fixture data.
type IndexSource interface {
	// LatestChannel returns the "major.minor" channel of the first index
	// entry matching the requested major version
	LatestChannel(ctx context.Context, major string) (string, error)
}

// Resolver classifies version specifiers and resolves ambiguous channel
// specifiers against an index source. Resolvers are stateless; the same
// specifier always yields the same argument for an unchanged index.
type Resolver struct {
	source IndexSource
}

// NewResolver creates a resolver backed by the given index source
func NewResolver(source IndexSource) *Resolver {
	return &Resolver{source: source}
}

var numericToken = regexp.MustCompile(`^\d+$`)

// Resolve parses a version specifier and produces the argument the install
// script should receive.
//
// Accepted forms: A.B.C (exact version), A.B / A.B.x (exact channel),
// A / A.x (latest channel for the major, resolved via the index source).
// An empty specifier resolves to an unresolved argument, deferring to the
// install script's own default.
func (r *Resolver) Resolve(ctx context.Context, specifier string) (types.ResolvedArgument, error) {
	specifier = strings.TrimSpace(specifier)
	if specifier == "" {
		return types.ResolvedArgument{Kind: types.KindUnresolved}, nil
	}

	if _, err := semver.NewConstraint(specifier); err != nil {
		return types.ResolvedArgument{}, &types.InvalidSpecifierError{Specifier: specifier, Err: err}
	}

	// A fully concrete version (including prerelease suffixes) is passed
	// through verbatim. Quality tiers only apply to channel installs.
	if _, err := semver.StrictNewVersion(specifier); err == nil {
		return types.ResolvedArgument{
			Kind:  types.KindExactVersion,
			Value: specifier,
		}, nil
	}

	parts := strings.Split(specifier, ".")
	major := parts[0]
	if !numericToken.MatchString(major) {
		// Range syntax like ">=6" or "*" passes constraint validation but
		// is not channel-shaped; produce no argument rather than guessing.
		logger.V(2).Infof("Specifier %q is not channel-shaped, deferring to installer default", specifier)
		return types.ResolvedArgument{Kind: types.KindUnresolved}, nil
	}

	arg := types.ResolvedArgument{
		Kind:            types.KindChannel,
		SupportsQuality: supportsQuality(major),
	}

	if len(parts) > 1 && numericToken.MatchString(parts[1]) {
		arg.Value = major + "." + parts[1]
		return arg, nil
	}

	// Minor absent or a wildcard: ask the index for the latest channel of
	// this major.
	channel, err := r.source.LatestChannel(ctx, major)
	if err != nil {
		return types.ResolvedArgument{}, err
	}

	arg.Value = channel
	return arg, nil
}

// supportsQuality gates quality-tier selection on the numeric major
// version. The comparison is numeric, not lexical ("10" qualifies).
func supportsQuality(major string) bool {
	n, err := strconv.Atoi(major)
	if err != nil {
		return false
	}
	return n >= QualityMinMajor
}
