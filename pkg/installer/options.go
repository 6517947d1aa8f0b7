package installer

import (
	"time"

	"github.com/flanksource/dotnet-install/pkg/types"
)

// InstallOptions configures invocation building and execution
type InstallOptions struct {
	// Quality is the requested build-quality tier (channel installs only)
	Quality types.QualityLevel
	// Proxy overrides proxy settings; nil reads https_proxy/no_proxy
	Proxy *types.ProxySettings
	// InstallDir overrides the platform's default install directory
	InstallDir string
	// ScriptDir is the directory holding the install scripts
	ScriptDir string
	// Architecture is forwarded to the script when set
	Architecture string
	// IndexURL overrides the releases-index URL
	IndexURL string
	// DryRun builds and reports the invocation without executing it
	DryRun bool
	// Timeout bounds script execution
	Timeout time.Duration
	// OSOverride / ArchOverride select a target platform other than the host
	OSOverride   string
	ArchOverride string
}

// InstallOption is a functional option for configuring installation
type InstallOption func(*InstallOptions)

// WithQuality requests a build-quality tier
func WithQuality(quality types.QualityLevel) InstallOption {
	return func(opts *InstallOptions) {
		opts.Quality = quality
	}
}

// WithProxy overrides the proxy settings read from the environment
func WithProxy(proxy types.ProxySettings) InstallOption {
	return func(opts *InstallOptions) {
		opts.Proxy = &proxy
	}
}

// WithInstallDir overrides the install directory
func WithInstallDir(dir string) InstallOption {
	return func(opts *InstallOptions) {
		opts.InstallDir = dir
	}
}

// WithScriptDir sets the directory holding the install scripts
func WithScriptDir(dir string) InstallOption {
	return func(opts *InstallOptions) {
		opts.ScriptDir = dir
	}
}

// WithArchitecture forwards a target architecture to the install script
func WithArchitecture(arch string) InstallOption {
	return func(opts *InstallOptions) {
		opts.Architecture = arch
	}
}

// WithIndexURL overrides the releases-index URL
func WithIndexURL(url string) InstallOption {
	return func(opts *InstallOptions) {
		opts.IndexURL = url
	}
}

// WithDryRun builds the invocation without executing it
func WithDryRun(dryRun bool) InstallOption {
	return func(opts *InstallOptions) {
		opts.DryRun = dryRun
	}
}

// WithTimeout bounds install script execution
func WithTimeout(timeout time.Duration) InstallOption {
	return func(opts *InstallOptions) {
		opts.Timeout = timeout
	}
}

// WithOS sets OS and architecture overrides for the target platform
func WithOS(os, arch string) InstallOption {
	return func(opts *InstallOptions) {
		opts.OSOverride = os
		opts.ArchOverride = arch
	}
}

// DefaultOptions returns sensible default options
func DefaultOptions() InstallOptions {
	return InstallOptions{
		Timeout: 5 * time.Minute,
	}
}
