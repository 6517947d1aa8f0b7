package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flanksource/dotnet-install/pkg/platform"
	"github.com/flanksource/dotnet-install/pkg/types"
)

var (
	linuxPlatform   = platform.Platform{OS: "linux", Arch: "amd64"}
	darwinPlatform  = platform.Platform{OS: "darwin", Arch: "arm64"}
	windowsPlatform = platform.Platform{OS: "windows", Arch: "amd64"}
)

func TestBuildScriptArgs_LinuxExactVersion(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindExactVersion, Value: "6.0.100"}

	args := BuildScriptArgs(resolved, linuxPlatform, DefaultOptions())

	assert.Equal(t, []string{"--version", "6.0.100", "--install-dir", "/usr/share/dotnet"}, args)
}

func TestBuildScriptArgs_LinuxChannel(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "6.0", SupportsQuality: true}

	args := BuildScriptArgs(resolved, linuxPlatform, DefaultOptions())

	assert.Equal(t, []string{"--channel", "6.0", "--install-dir", "/usr/share/dotnet"}, args)
}

func TestBuildScriptArgs_Unresolved(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindUnresolved}

	args := BuildScriptArgs(resolved, darwinPlatform, DefaultOptions())

	assert.Empty(t, args, "unresolved arguments defer entirely to the install script default")
}

func TestBuildScriptArgs_UnresolvedLinuxStillPinsInstallDir(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindUnresolved}

	args := BuildScriptArgs(resolved, linuxPlatform, DefaultOptions())

	assert.Equal(t, []string{"--install-dir", "/usr/share/dotnet"}, args)
}

func TestBuildScriptArgs_QualityAppendedWhenSupported(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "6.0", SupportsQuality: true}
	opts := DefaultOptions()
	opts.Quality = types.QualityGA

	args := BuildScriptArgs(resolved, darwinPlatform, opts)

	assert.Equal(t, []string{"--channel", "6.0", "--quality", "ga"}, args)
}

func TestBuildScriptArgs_QualityOmittedWhenUnsupported(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "5.0"}
	opts := DefaultOptions()
	opts.Quality = types.QualityGA

	args := BuildScriptArgs(resolved, darwinPlatform, opts)

	assert.NotContains(t, args, "--quality")
	assert.Equal(t, []string{"--channel", "5.0"}, args)
}

func TestBuildScriptArgs_QualityNeverAppliesToExactVersions(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindExactVersion, Value: "6.0.100"}
	opts := DefaultOptions()
	opts.Quality = types.QualityPreview

	args := BuildScriptArgs(resolved, darwinPlatform, opts)

	assert.Equal(t, []string{"--version", "6.0.100"}, args)
}

func TestBuildScriptArgs_InstallDirOverride(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "8.0", SupportsQuality: true}
	opts := DefaultOptions()
	opts.InstallDir = "/opt/dotnet"

	args := BuildScriptArgs(resolved, linuxPlatform, opts)

	assert.Equal(t, []string{"--channel", "8.0", "--install-dir", "/opt/dotnet"}, args)
}

func TestBuildScriptArgs_Architecture(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "8.0", SupportsQuality: true}
	opts := DefaultOptions()
	opts.Architecture = "arm64"

	args := BuildScriptArgs(resolved, darwinPlatform, opts)

	assert.Equal(t, []string{"--channel", "8.0", "--architecture", "arm64"}, args)
}

func TestBuildScriptArgs_WindowsFlagSpelling(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "6.0", SupportsQuality: true}
	opts := DefaultOptions()
	opts.Quality = types.QualityPreview
	opts.Proxy = &types.ProxySettings{}

	args := BuildScriptArgs(resolved, windowsPlatform, opts)

	assert.Equal(t, []string{"-Channel", "6.0", "-Quality", "preview"}, args)
}

func TestBuildScriptArgs_WindowsProxy(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindExactVersion, Value: "6.0.100"}
	opts := DefaultOptions()
	opts.Proxy = &types.ProxySettings{Address: "http://proxy:8080", BypassList: "localhost,.internal"}

	args := BuildScriptArgs(resolved, windowsPlatform, opts)

	assert.Equal(t, []string{
		"-Version", "6.0.100",
		"-ProxyAddress", "http://proxy:8080",
		"-ProxyBypassList", "localhost,.internal",
	}, args)
}

func TestBuildScriptArgs_WindowsProxyFromEnv(t *testing.T) {
	t.Setenv("https_proxy", "http://proxy:3128")
	t.Setenv("no_proxy", "example.com")

	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "7.0", SupportsQuality: true}

	args := BuildScriptArgs(resolved, windowsPlatform, DefaultOptions())

	assert.Contains(t, args, "-ProxyAddress")
	assert.Contains(t, args, "http://proxy:3128")
	assert.Contains(t, args, "-ProxyBypassList")
	assert.Contains(t, args, "example.com")
}

func TestBuildScriptArgs_WindowsNoInstallDirFlag(t *testing.T) {
	resolved := types.ResolvedArgument{Kind: types.KindChannel, Value: "6.0", SupportsQuality: true}
	opts := DefaultOptions()
	opts.InstallDir = `C:\dotnet`
	opts.Proxy = &types.ProxySettings{}

	args := BuildScriptArgs(resolved, windowsPlatform, opts)

	// Windows installs take the directory via DOTNET_INSTALL_DIR, not a flag
	assert.NotContains(t, args, "-InstallDir")
}

func TestWindowsCommand(t *testing.T) {
	tests := []struct {
		name   string
		script string
		args   []string
		want   string
	}{
		{
			name:   "plain script path",
			script: `C:\actions\dotnet-install.ps1`,
			args:   []string{"-Channel", "6.0"},
			want:   `& 'C:\actions\dotnet-install.ps1' -Channel '6.0'`,
		},
		{
			name:   "single quotes in script path are escaped",
			script: `C:\runner's home\dotnet-install.ps1`,
			args:   []string{"-Version", "6.0.100"},
			want:   `& 'C:\runner''s home\dotnet-install.ps1' -Version '6.0.100'`,
		},
		{
			name:   "no arguments",
			script: `dotnet-install.ps1`,
			args:   nil,
			want:   `& 'dotnet-install.ps1'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windowsCommand(tt.script, tt.args))
		})
	}
}
