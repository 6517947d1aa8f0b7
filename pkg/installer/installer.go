package installer

import (
	"context"
	"errors"
	"os"
	osexec "os/exec"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/task"
	"github.com/flanksource/commons/logger"

	"github.com/flanksource/dotnet-install/pkg/index"
	"github.com/flanksource/dotnet-install/pkg/platform"
	"github.com/flanksource/dotnet-install/pkg/types"
	"github.com/flanksource/dotnet-install/pkg/version"
)

// Installer drives the resolve -> build -> invoke pipeline for a single
// installation request. Each request is an independent, single flow: the
// only network I/O is the resolver's index fetch, and script execution is a
// blocking synchronous step.
type Installer struct {
	opts     InstallOptions
	resolver *version.Resolver
}

// New creates an installer with the given options
func New(opts ...InstallOption) *Installer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	source := index.NewClient(index.WithURL(options.IndexURL))

	return &Installer{
		opts:     options,
		resolver: version.NewResolver(source),
	}
}

// NewWithSource creates an installer with an injected index source, used by
// tests to resolve against fixture data
func NewWithSource(source version.IndexSource, opts ...InstallOption) *Installer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Installer{
		opts:     options,
		resolver: version.NewResolver(source),
	}
}

// Platform returns the target platform, honoring OS/arch overrides
func (i *Installer) Platform() platform.Platform {
	plat := platform.Current()
	if i.opts.OSOverride != "" {
		plat.OS = i.opts.OSOverride
	}
	if i.opts.ArchOverride != "" {
		plat.Arch = i.opts.ArchOverride
	}
	return plat.Normalize()
}

// Resolve resolves a specifier without building or running an invocation
func (i *Installer) Resolve(ctx context.Context, specifier string) (types.ResolvedArgument, error) {
	return i.resolver.Resolve(ctx, specifier)
}

// Install resolves the specifier, builds the platform invocation and runs
// the install script. Fatal errors abort the pipeline immediately; no
// partial state is left behind for this layer to clean up.
func (i *Installer) Install(ctx context.Context, specifier string) (*types.InstallResult, error) {
	return i.InstallWithTask(ctx, specifier, nil)
}

// InstallWithTask runs the installation pipeline with a task for progress
// tracking
func (i *Installer) InstallWithTask(ctx context.Context, specifier string, t *task.Task) (*types.InstallResult, error) {
	plat := i.Platform()

	resolved, err := i.resolver.Resolve(ctx, specifier)
	if err != nil {
		return nil, err
	}

	inv, err := BuildInvocation(resolved, plat, i.opts)
	if err != nil {
		return nil, err
	}

	result := &types.InstallResult{
		Resolved: resolved,
		Platform: plat,
		Command:  inv.Command(),
	}

	if i.opts.DryRun {
		logger.Infof("Dry run: %v", inv.Command())
		result.Status = types.InstallStatusDryRun
		return result, nil
	}

	if !plat.IsWindows() {
		// The install script ships without an executable bit; set it
		// before handing off to the interpreter.
		if err := os.Chmod(inv.Script, 0o755); err != nil && !os.IsNotExist(err) {
			logger.Warnf("Failed to mark %s executable: %v", inv.Script, err)
		}
	}

	process := clicky.Exec(inv.Path, inv.Args...)

	if i.opts.Timeout > 0 {
		process = process.WithTimeout(i.opts.Timeout)
	}

	if len(inv.Env) > 0 {
		process = process.WithEnv(inv.Env)
	}

	if t != nil {
		process = process.WithTask(t)
	}

	run := process.Run()
	result.Output = run.Out()

	if run.Err != nil {
		result.Status = types.InstallStatusFailed
		return result, &types.InstallerExecutionError{
			ExitCode: exitCode(run.Err),
			Output:   run.Out(),
			Err:      run.Err,
		}
	}

	result.Status = types.InstallStatusInstalled
	return result, nil
}

// exitCode extracts the process exit code from an execution error
func exitCode(err error) int {
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
