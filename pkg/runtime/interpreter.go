package runtime

import (
	"os/exec"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/dotnet-install/pkg/platform"
	"github.com/flanksource/dotnet-install/pkg/types"
)

// interpreterVariants returns the script interpreter binaries to search for,
// in preference order. Windows prefers PowerShell Core over Windows
// PowerShell; POSIX installs run under bash.
func interpreterVariants(p platform.Platform) []string {
	if p.IsWindows() {
		return []string{"pwsh", "powershell"}
	}
	return []string{"bash"}
}

// ResolveInterpreter searches the host PATH for a script interpreter capable
// of running the platform's install script.
func ResolveInterpreter(p platform.Platform) (string, error) {
	variants := interpreterVariants(p)

	for _, name := range variants {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		logger.V(4).Infof("Found %s interpreter at: %s", name, path)
		return path, nil
	}

	return "", &types.ExecutableNotFoundError{Searched: variants}
}
