package types

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/api"
	"github.com/samber/lo"

	"github.com/flanksource/dotnet-install/pkg/platform"
)

// ArgumentKind classifies what a version specifier resolved to
type ArgumentKind int

const (
	// KindUnresolved means no version/channel argument is produced and the
	// install script falls back to its own default
	KindUnresolved ArgumentKind = iota
	// KindExactVersion requests one specific version (A.B.C)
	KindExactVersion
	// KindChannel requests the latest version of a major.minor release train
	KindChannel
)

func (k ArgumentKind) String() string {
	switch k {
	case KindExactVersion:
		return "version"
	case KindChannel:
		return "channel"
	default:
		return "unresolved"
	}
}

// Flag returns the install-script flag spelling for this kind on the given
// platform. Unresolved kinds carry no flag.
func (k ArgumentKind) Flag(p platform.Platform) string {
	switch k {
	case KindExactVersion:
		return p.VersionFlag()
	case KindChannel:
		return p.ChannelFlag()
	default:
		return ""
	}
}

// ResolvedArgument is the outcome of resolving a version specifier. It is
// constructed once per resolution and never mutated; Value is always
// non-empty when Kind is not KindUnresolved.
type ResolvedArgument struct {
	// Kind classifies the argument as an exact version, a channel, or nothing
	Kind ArgumentKind `json:"kind" yaml:"kind"`
	// Value is the version (A.B.C) or channel (A.B) string
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	// SupportsQuality is true only for channel arguments whose major version
	// is new enough for quality-tier selection
	SupportsQuality bool `json:"supports_quality" yaml:"supports_quality"`
}

// IsUnresolved reports whether no version/channel argument was produced
func (r ResolvedArgument) IsUnresolved() bool {
	return r.Kind == KindUnresolved
}

func (r ResolvedArgument) Pretty() api.Text {
	text := clicky.Text("").Append(r.Kind.String(), "bold")

	if r.Value != "" {
		text = text.Append(" " + r.Value)
	}

	if r.SupportsQuality {
		text = text.Append(" (quality selectable)", "text-muted")
	}

	return text
}

// QualityLevel selects a build quality tier for channel installs
type QualityLevel string

const (
	QualityDaily     QualityLevel = "daily"
	QualitySigned    QualityLevel = "signed"
	QualityValidated QualityLevel = "validated"
	QualityPreview   QualityLevel = "preview"
	QualityGA        QualityLevel = "ga"
)

// QualityLevels lists the quality tiers recognized by the install scripts
func QualityLevels() []QualityLevel {
	return []QualityLevel{QualityDaily, QualitySigned, QualityValidated, QualityPreview, QualityGA}
}

// ParseQuality validates a user-supplied quality value, suggesting the
// closest known tier when it does not match
func ParseQuality(s string) (QualityLevel, error) {
	q := strings.ToLower(strings.TrimSpace(s))
	if q == "" {
		return "", fmt.Errorf("empty quality level")
	}

	names := lo.Map(QualityLevels(), func(l QualityLevel, _ int) string { return string(l) })
	for _, name := range names {
		if q == name {
			return QualityLevel(q), nil
		}
	}

	sort.Slice(names, func(i, j int) bool {
		return levenshtein.ComputeDistance(q, names[i]) < levenshtein.ComputeDistance(q, names[j])
	})

	return "", fmt.Errorf("unknown quality level %q (did you mean %q? valid levels: %s)",
		s, names[0], strings.Join(lo.Map(QualityLevels(), func(l QualityLevel, _ int) string { return string(l) }), ", "))
}

// ProxySettings carries proxy configuration forwarded to the install script
type ProxySettings struct {
	// Address is the proxy URL, from https_proxy
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	// BypassList is a comma-separated host list, from no_proxy
	BypassList string `json:"bypass_list,omitempty" yaml:"bypass_list,omitempty"`
}

// ProxyFromEnv reads proxy settings from the conventional lowercase
// environment variables
func ProxyFromEnv() ProxySettings {
	return ProxySettings{
		Address:    os.Getenv("https_proxy"),
		BypassList: os.Getenv("no_proxy"),
	}
}

// IsZero reports whether no proxy configuration is present
func (p ProxySettings) IsZero() bool {
	return p.Address == "" && p.BypassList == ""
}

// InstallStatus describes how an installation concluded
type InstallStatus string

const (
	InstallStatusInstalled InstallStatus = "installed"
	InstallStatusDryRun    InstallStatus = "dry-run"
	InstallStatusFailed    InstallStatus = "failed"
)

// InstallResult holds the outcome of a resolve+build+invoke cycle
type InstallResult struct {
	// Resolved is the argument the specifier resolved to
	Resolved ResolvedArgument `json:"resolved" yaml:"resolved"`
	// Platform identifies the target OS and architecture
	Platform platform.Platform `json:"platform" yaml:"platform"`
	// Command is the full rendered invocation
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`
	// Status describes how the installation concluded
	Status InstallStatus `json:"status" yaml:"status"`
	// Output is the captured installer output
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

func (r InstallResult) Pretty() api.Text {
	text := clicky.Text("").Append("dotnet ", "bold")

	if r.Resolved.Value != "" {
		text = text.Append(r.Resolved.Value, "bold")
	} else {
		text = text.Append("(default)", "text-muted")
	}

	if r.Platform.OS != "" || r.Platform.Arch != "" {
		text = text.Append(" (" + r.Platform.String() + ")")
	}

	switch r.Status {
	case InstallStatusInstalled:
		text = text.Append(" installed", "text-green-500")
	case InstallStatusDryRun:
		text = text.Append(" dry-run", "text-muted")
	case InstallStatusFailed:
		text = text.Append(" failed", "text-red-500")
	}

	if len(r.Command) > 0 {
		text = text.Append(" -> ", "text-muted").Append(lo.Ellipsis(strings.Join(r.Command, " "), 120))
	}

	return text
}
