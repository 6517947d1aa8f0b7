package dotnetinstall

import (
	"context"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/task"
	flanksourceContext "github.com/flanksource/commons/context"

	"github.com/flanksource/dotnet-install/pkg/installer"
	"github.com/flanksource/dotnet-install/pkg/types"
)

// Re-export commonly used types for the public API
type (
	ResolvedArgument = types.ResolvedArgument
	ArgumentKind     = types.ArgumentKind
	QualityLevel     = types.QualityLevel
	InstallResult    = types.InstallResult
)

// Re-export argument kinds
const (
	KindUnresolved   = types.KindUnresolved
	KindExactVersion = types.KindExactVersion
	KindChannel      = types.KindChannel
)

// Re-export quality tiers
const (
	QualityDaily     = types.QualityDaily
	QualitySigned    = types.QualitySigned
	QualityValidated = types.QualityValidated
	QualityPreview   = types.QualityPreview
	QualityGA        = types.QualityGA
)

// Re-export installer options
type InstallOption = installer.InstallOption

var (
	WithQuality      = installer.WithQuality
	WithProxy        = installer.WithProxy
	WithInstallDir   = installer.WithInstallDir
	WithScriptDir    = installer.WithScriptDir
	WithArchitecture = installer.WithArchitecture
	WithIndexURL     = installer.WithIndexURL
	WithDryRun       = installer.WithDryRun
	WithTimeout      = installer.WithTimeout
	WithOS           = installer.WithOS
)

// Install resolves a version specifier and runs the platform install
// script. This is the main public API for programmatic installation.
//
// Example:
//
//	result, err := dotnetinstall.Install("6.0",
//	    dotnetinstall.WithQuality(dotnetinstall.QualityGA))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Pretty())
func Install(specifier string, opts ...InstallOption) (*InstallResult, error) {
	inst := installer.New(opts...)

	var result *InstallResult
	var installErr error

	task.StartTask("dotnet-install", func(ctx flanksourceContext.Context, t *task.Task) (interface{}, error) {
		result, installErr = inst.InstallWithTask(ctx, specifier, t)
		return result, installErr
	})

	clicky.WaitForGlobalCompletion()

	return result, installErr
}

// Resolve resolves a version specifier into the argument the install script
// would receive, without running anything.
func Resolve(ctx context.Context, specifier string, opts ...InstallOption) (ResolvedArgument, error) {
	return installer.New(opts...).Resolve(ctx, specifier)
}
