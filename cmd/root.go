package cmd

import (
	"fmt"
	"os"

	"github.com/flanksource/clicky"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/flanksource/dotnet-install/pkg/config"
	"github.com/flanksource/dotnet-install/pkg/platform"
)

var (
	configFile   string
	indexURL     string
	installDir   string
	scriptDir    string
	quality      string
	architecture string
	dryRun       bool
	osOverride   string
	archOverride string
	cfg          *config.Config
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// SetVersion records build metadata injected at link time
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "dotnet-install",
	Short: "Resolve .NET version specifiers and drive the dotnet-install scripts",
	Long: `dotnet-install resolves a loose .NET version specifier (6, 6.0, 6.0.x,
6.0.100) into a concrete version or release channel, then runs the
platform-specific install script with the matching arguments.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		clicky.Flags.UseFlags()

		platform.SetGlobalOverrides(osOverride, archOverride)

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger.V(2).Infof("Target platform %s", targetPlatform())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// targetPlatform returns the platform installs are built for, honoring the
// --os/--arch flags and then the config file
func targetPlatform() platform.Platform {
	if osOverride != "" || archOverride != "" || cfg == nil {
		return platform.Current().Normalize()
	}
	return cfg.Platform.Normalize()
}

func init() {
	clicky.BindAllFlags(rootCmd.PersistentFlags(), "tasks", "!format")

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to dotnet-install.yaml config file")
	rootCmd.PersistentFlags().StringVar(&indexURL, "index-url", "", "Releases-index URL override")
	rootCmd.PersistentFlags().StringVar(&installDir, "install-dir", "", "Installation directory override")
	rootCmd.PersistentFlags().StringVar(&scriptDir, "script-dir", "", "Directory containing the dotnet-install scripts")
	rootCmd.PersistentFlags().StringVar(&osOverride, "os", "", "Target OS (linux, darwin, windows)")
	rootCmd.PersistentFlags().StringVar(&archOverride, "arch", "", "Target architecture (amd64, arm64, etc.)")
}
