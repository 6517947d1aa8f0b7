package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Platform represents a target OS/Architecture combination
type Platform struct {
	OS   string `json:"os" yaml:"os"`
	Arch string `json:"arch" yaml:"arch"`
}

// Global overrides for platform detection
var (
	globalOSOverride   string
	globalArchOverride string
	globalMutex        sync.RWMutex
)

// String returns a string representation of the platform (e.g., "linux-amd64")
func (p Platform) String() string {
	return fmt.Sprintf("%s-%s", p.OS, p.Arch)
}

// SetGlobalOverrides sets global OS and architecture overrides from CLI flags
func SetGlobalOverrides(osOverride, archOverride string) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalOSOverride = osOverride
	globalArchOverride = archOverride
}

// Current returns the current platform, respecting global overrides
func Current() Platform {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	os := globalOSOverride
	arch := globalArchOverride

	if os == "" {
		os = runtime.GOOS
	}
	if arch == "" {
		arch = runtime.GOARCH
	}

	return Platform{
		OS:   os,
		Arch: arch,
	}
}

// Parse parses a platform string (e.g., "linux-amd64") into a Platform
func Parse(platformStr string) (Platform, error) {
	parts := strings.Split(platformStr, "-")
	if len(parts) != 2 {
		return Platform{}, fmt.Errorf("invalid platform format: %s (expected os-arch)", platformStr)
	}
	return Platform{
		OS:   parts[0],
		Arch: parts[1],
	}, nil
}

// Normalize normalizes platform values to standard forms
func (p Platform) Normalize() Platform {
	return Platform{
		OS:   normalizeOS(p.OS),
		Arch: normalizeArch(p.Arch),
	}
}

func normalizeOS(os string) string {
	switch strings.ToLower(os) {
	case "macos", "osx", "mac":
		return "darwin"
	case "win", "win32", "win64":
		return "windows"
	default:
		return strings.ToLower(os)
	}
}

func normalizeArch(arch string) string {
	switch strings.ToLower(arch) {
	case "x86_64", "x64", "amd64":
		return "amd64"
	case "aarch64", "arm64":
		return "arm64"
	case "i386", "i686", "x86", "386":
		return "386"
	case "armv7", "armv7l", "arm":
		return "arm"
	default:
		return strings.ToLower(arch)
	}
}

// IsWindows returns true if the platform is Windows
func (p Platform) IsWindows() bool {
	return p.OS == "windows"
}

// IsLinux returns true if the platform is a Linux-classified OS
func (p Platform) IsLinux() bool {
	return p.OS == "linux"
}

// ScriptName returns the installer script name for the platform
func (p Platform) ScriptName() string {
	if p.IsWindows() {
		return "dotnet-install.ps1"
	}
	return "dotnet-install.sh"
}

// ChannelFlag returns the installer flag used to request a channel install
func (p Platform) ChannelFlag() string {
	if p.IsWindows() {
		return "-Channel"
	}
	return "--channel"
}

// VersionFlag returns the installer flag used to request an exact version install
func (p Platform) VersionFlag() string {
	if p.IsWindows() {
		return "-Version"
	}
	return "--version"
}

// QualityFlag returns the installer flag used to select a build quality tier
func (p Platform) QualityFlag() string {
	if p.IsWindows() {
		return "-Quality"
	}
	return "--quality"
}

// ArchitectureFlag returns the installer flag used to select a target architecture
func (p Platform) ArchitectureFlag() string {
	if p.IsWindows() {
		return "-Architecture"
	}
	return "--architecture"
}

// InstallDirFlag returns the installer flag used to set the install directory
func (p Platform) InstallDirFlag() string {
	if p.IsWindows() {
		return "-InstallDir"
	}
	return "--install-dir"
}

// LinuxInstallDir is the pinned system-wide install location on Linux. The
// install script defaults to a per-user directory, which is not predictable
// across hosts, so Linux installs target this path instead.
const LinuxInstallDir = "/usr/share/dotnet"

// DefaultInstallDir returns the default installation directory for the
// platform. Linux is pinned to a fixed system path; Windows uses the
// PROGRAMFILES root; other POSIX systems fall back to the per-user default.
func (p Platform) DefaultInstallDir() string {
	switch {
	case p.IsLinux():
		return LinuxInstallDir
	case p.IsWindows():
		if programFiles := os.Getenv("PROGRAMFILES"); programFiles != "" {
			return filepath.Join(programFiles, "dotnet")
		}
		return `C:\Program Files\dotnet`
	default:
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".dotnet")
		}
		return ""
	}
}
