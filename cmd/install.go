package cmd

import (
	"fmt"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/task"
	flanksourceContext "github.com/flanksource/commons/context"
	"github.com/spf13/cobra"

	"github.com/flanksource/dotnet-install/pkg/installer"
	"github.com/flanksource/dotnet-install/pkg/types"
)

var installCmd = &cobra.Command{
	Use:          "install [specifier]",
	Short:        "Install a .NET SDK or runtime version",
	SilenceUsage: true,
	Long: `Install a .NET version by exact version or channel specifier.

With no specifier the install script picks its own default version.

Examples:
  dotnet-install install 6.0.100      # exact version
  dotnet-install install 6.0          # latest of the 6.0 channel
  dotnet-install install 6            # latest 6.x channel from the releases index
  dotnet-install install 7 --quality preview`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&quality, "quality", "", "Build quality tier (daily, signed, validated, preview, ga)")
	installCmd.Flags().StringVar(&architecture, "architecture", "", "Target architecture passed to the install script")
	installCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the invocation without running the install script")
}

// installerOptions merges config-file settings with command-line flags,
// flags winning
func installerOptions() ([]installer.InstallOption, error) {
	opts := []installer.InstallOption{
		installer.WithTimeout(cfg.TimeoutDuration()),
		installer.WithOS(targetPlatform().OS, targetPlatform().Arch),
		installer.WithDryRun(dryRun),
	}

	if url := firstNonEmpty(indexURL, cfg.IndexURL); url != "" {
		opts = append(opts, installer.WithIndexURL(url))
	}
	if dir := firstNonEmpty(installDir, cfg.InstallDir); dir != "" {
		opts = append(opts, installer.WithInstallDir(dir))
	}
	if dir := firstNonEmpty(scriptDir, cfg.ScriptDir); dir != "" {
		opts = append(opts, installer.WithScriptDir(dir))
	}
	if architecture != "" {
		opts = append(opts, installer.WithArchitecture(architecture))
	}
	if !cfg.Proxy.IsZero() {
		opts = append(opts, installer.WithProxy(cfg.Proxy))
	}

	if q := firstNonEmpty(quality, cfg.Quality); q != "" {
		parsed, err := types.ParseQuality(q)
		if err != nil {
			return nil, err
		}
		opts = append(opts, installer.WithQuality(parsed))
	}

	return opts, nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	specifier := ""
	if len(args) > 0 {
		specifier = args[0]
	}

	opts, err := installerOptions()
	if err != nil {
		return err
	}
	inst := installer.New(opts...)

	var result *types.InstallResult
	var installErr error

	task.StartTask("dotnet-install", func(ctx flanksourceContext.Context, t *task.Task) (interface{}, error) {
		result, installErr = inst.InstallWithTask(ctx, specifier, t)
		return result, installErr
	})

	if exitCode := clicky.WaitForGlobalCompletion(); exitCode != 0 {
		return fmt.Errorf("installation failed with exit code %d", exitCode)
	}

	return installErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
