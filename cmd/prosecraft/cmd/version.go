package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/prosecraft/prosecraft/internal/ui"
	"github.com/prosecraft/prosecraft/internal/version"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionYAML bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information about prosecraft.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get(Version, Commit, BuildDate)
		if versionYAML {
			return yaml.NewEncoder(os.Stdout).Encode(info)
		}

		if ui.CurrentPreferences.ShowBanner {
			fmt.Println(ui.Banner())
		}
		fmt.Printf("Version:    %s\n", info.Short())
		fmt.Printf("Commit:     %s\n", info.Commit)
		fmt.Printf("Build Date: %s\n", info.BuildDate)
		fmt.Printf("Go Version: %s\n", info.GoVersion)
		fmt.Printf("OS/Arch:    %s\n", info.Platform)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionYAML, "yaml", false, "Print as YAML")
}
