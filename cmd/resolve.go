package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flanksource/dotnet-install/pkg/installer"
)

var resolveCmd = &cobra.Command{
	Use:          "resolve <specifier>",
	Short:        "Resolve a version specifier without installing",
	SilenceUsage: true,
	Long: `Resolve a version specifier into the argument the install script would
receive, printing its kind (version or channel), value, and whether a build
quality tier may be selected. Channel specifiers without a minor version
query the releases index.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	opts, err := installerOptions()
	if err != nil {
		return err
	}
	inst := installer.New(opts...)

	resolved, err := inst.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if resolved.IsUnresolved() {
		fmt.Println("unresolved (install script default applies)")
		return nil
	}

	plat := targetPlatform()
	fmt.Printf("%s %s\n", resolved.Kind.Flag(plat), resolved.Value)
	fmt.Printf("kind: %s\n", resolved.Kind)
	fmt.Printf("quality selectable: %t\n", resolved.SupportsQuality)
	return nil
}
