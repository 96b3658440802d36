package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvsmeta/wsync/pkg/wsmeta"
)

func rootMain(command *cobra.Command, arguments []string) {
	if rootConfiguration.version {
		fmt.Println(wsmeta.Version)
		return
	}
	command.Help()
}

var rootCommand = &cobra.Command{
	Use:   "wsync",
	Short: "wsync manages workspace synchronization metadata for a CVS-family checkout.",
	Run:   rootMain,
}

var rootConfiguration struct {
	// help indicates whether or not help information should be shown.
	help bool
	// version indicates whether or not version information should be
	// shown.
	version bool
	// root is the project root that every subcommand operates against.
	root string
}

func init() {
	persistent := rootCommand.PersistentFlags()
	persistent.StringVar(&rootConfiguration.root, "root", "", "Project root (defaults to the current directory)")

	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		statusCommand,
		ignoreCommand,
		flushCommand,
	)
}
