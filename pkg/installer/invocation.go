package installer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/dotnet-install/pkg/platform"
	"github.com/flanksource/dotnet-install/pkg/runtime"
	"github.com/flanksource/dotnet-install/pkg/types"
	"github.com/flanksource/dotnet-install/pkg/version"
)

// Invocation is a fully assembled install-script run: interpreter path,
// ordered argument list and environment additions. Immutable once built and
// consumed exactly once.
type Invocation struct {
	// Path is the resolved script interpreter executable
	Path string
	// Args is the full ordered argument list passed to the interpreter
	Args []string
	// Env holds additional environment variables for the script
	Env map[string]string
	// Script is the install script the invocation runs
	Script string
}

// Command renders the invocation as a printable command line
func (i *Invocation) Command() []string {
	return append([]string{i.Path}, i.Args...)
}

// BuildScriptArgs assembles the platform-tagged argument list for the
// install script. This is the pure part of invocation building: no PATH
// lookups, no filesystem access.
//
// An unresolved argument contributes no version/channel flags, deferring to
// the script's own default. A requested quality tier is appended only when
// the resolved argument supports it; otherwise it is dropped with a warning.
func BuildScriptArgs(resolved types.ResolvedArgument, plat platform.Platform, opts InstallOptions) []string {
	var args []string

	if !resolved.IsUnresolved() {
		args = append(args, resolved.Kind.Flag(plat), resolved.Value)
	}

	if opts.Quality != "" {
		if resolved.SupportsQuality {
			args = append(args, plat.QualityFlag(), string(opts.Quality))
		} else {
			logger.Warnf("Ignoring quality %q: quality selection only applies to channel specifiers with major version %d or newer", opts.Quality, version.QualityMinMajor)
		}
	}

	if opts.Architecture != "" {
		args = append(args, plat.ArchitectureFlag(), opts.Architecture)
	}

	if plat.IsWindows() {
		proxy := opts.Proxy
		if proxy == nil {
			env := types.ProxyFromEnv()
			proxy = &env
		}
		if proxy.Address != "" {
			args = append(args, "-ProxyAddress", proxy.Address)
		}
		if proxy.BypassList != "" {
			args = append(args, "-ProxyBypassList", proxy.BypassList)
		}
		return args
	}

	// POSIX: pin the install directory. Linux targets a fixed system path
	// so installs land in a predictable location; elsewhere the pin only
	// applies when explicitly configured.
	installDir := opts.InstallDir
	if installDir == "" && plat.IsLinux() {
		installDir = platform.LinuxInstallDir
	}
	if installDir != "" {
		args = append(args, plat.InstallDirFlag(), installDir)
	}

	return args
}

// powershellFlags are the interpreter flags the install script is wrapped
// under on Windows
var powershellFlags = []string{"-NoLogo", "-Sta", "-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Unrestricted", "-Command"}

// windowsCommand renders the script path and arguments as a single
// PowerShell command string. Single quotes embedded in the script path are
// escaped and each value-bearing argument is quoted.
func windowsCommand(script string, scriptArgs []string) string {
	escaped := strings.ReplaceAll(script, "'", "''")

	var b strings.Builder
	fmt.Fprintf(&b, "& '%s'", escaped)
	for _, arg := range scriptArgs {
		if strings.HasPrefix(arg, "-") {
			b.WriteString(" " + arg)
			continue
		}
		fmt.Fprintf(&b, " '%s'", strings.ReplaceAll(arg, "'", "''"))
	}
	return b.String()
}

// BuildInvocation assembles the complete interpreter invocation for the
// platform, resolving the script interpreter from PATH.
func BuildInvocation(resolved types.ResolvedArgument, plat platform.Platform, opts InstallOptions) (*Invocation, error) {
	interpreter, err := runtime.ResolveInterpreter(plat)
	if err != nil {
		return nil, err
	}

	script := plat.ScriptName()
	if opts.ScriptDir != "" {
		script = filepath.Join(opts.ScriptDir, script)
	}

	scriptArgs := BuildScriptArgs(resolved, plat, opts)

	inv := &Invocation{
		Path:   interpreter,
		Script: script,
		Env:    map[string]string{},
	}

	if plat.IsWindows() {
		inv.Args = append(append([]string{}, powershellFlags...), windowsCommand(script, scriptArgs))
		if opts.InstallDir != "" {
			inv.Env["DOTNET_INSTALL_DIR"] = opts.InstallDir
		}
		return inv, nil
	}

	inv.Args = append([]string{script}, scriptArgs...)
	return inv, nil
}
