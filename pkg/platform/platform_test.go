package platform

import (
	"strings"
	"testing"
)

func TestFlagSpellings(t *testing.T) {
	windows := Platform{OS: "windows", Arch: "amd64"}
	posix := Platform{OS: "linux", Arch: "amd64"}

	tests := []struct {
		name    string
		windows string
		posix   string
		get     func(Platform) string
	}{
		{"channel", "-Channel", "--channel", Platform.ChannelFlag},
		{"version", "-Version", "--version", Platform.VersionFlag},
		{"quality", "-Quality", "--quality", Platform.QualityFlag},
		{"architecture", "-Architecture", "--architecture", Platform.ArchitectureFlag},
		{"install-dir", "-InstallDir", "--install-dir", Platform.InstallDirFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.get(windows); got != tt.windows {
				t.Errorf("windows %s flag = %q, want %q", tt.name, got, tt.windows)
			}
			if got := tt.get(posix); got != tt.posix {
				t.Errorf("posix %s flag = %q, want %q", tt.name, got, tt.posix)
			}
		})
	}
}

func TestScriptName(t *testing.T) {
	if got := (Platform{OS: "windows"}).ScriptName(); got != "dotnet-install.ps1" {
		t.Errorf("windows script = %q", got)
	}
	if got := (Platform{OS: "linux"}).ScriptName(); got != "dotnet-install.sh" {
		t.Errorf("linux script = %q", got)
	}
	if got := (Platform{OS: "darwin"}).ScriptName(); got != "dotnet-install.sh" {
		t.Errorf("darwin script = %q", got)
	}
}

func TestDefaultInstallDir(t *testing.T) {
	if got := (Platform{OS: "linux", Arch: "amd64"}).DefaultInstallDir(); got != LinuxInstallDir {
		t.Errorf("linux install dir = %q, want pinned %q", got, LinuxInstallDir)
	}

	t.Setenv("PROGRAMFILES", `C:\Program Files`)
	win := (Platform{OS: "windows", Arch: "amd64"}).DefaultInstallDir()
	if !strings.HasSuffix(win, "dotnet") {
		t.Errorf("windows install dir = %q, want a dotnet subdirectory of PROGRAMFILES", win)
	}

	t.Setenv("HOME", "/home/runner")
	darwin := (Platform{OS: "darwin", Arch: "arm64"}).DefaultInstallDir()
	if !strings.HasPrefix(darwin, "/home/runner") {
		t.Errorf("darwin install dir = %q, want per-user default", darwin)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   Platform
		want Platform
	}{
		{Platform{OS: "macOS", Arch: "x86_64"}, Platform{OS: "darwin", Arch: "amd64"}},
		{Platform{OS: "win64", Arch: "aarch64"}, Platform{OS: "windows", Arch: "arm64"}},
		{Platform{OS: "Linux", Arch: "x64"}, Platform{OS: "linux", Arch: "amd64"}},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("linux-amd64")
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}
	if p.OS != "linux" || p.Arch != "amd64" {
		t.Errorf("Parse() = %v", p)
	}

	if _, err := Parse("bogus"); err == nil {
		t.Error("Parse() expected error for malformed input")
	}
}

func TestGlobalOverrides(t *testing.T) {
	SetGlobalOverrides("windows", "arm64")
	defer SetGlobalOverrides("", "")

	p := Current()
	if p.OS != "windows" || p.Arch != "arm64" {
		t.Errorf("Current() = %v, want overrides applied", p)
	}
}
