package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvsmeta/wsync/pkg/wsync"
)

func ignoreMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return fmt.Errorf("invalid arguments: expected <folder> <pattern>")
	}
	folder, pattern := arguments[0], arguments[1]

	synchronizer, err := openSynchronizer(rootConfiguration.root)
	if err != nil {
		return fmt.Errorf("unable to open synchronizer: %w", err)
	}
	defer synchronizer.Shutdown()

	resource := wsync.Resource{Path: folder, Kind: wsync.KindFolder}
	err = synchronizer.WithBatch(resource, nil, func(scope *wsync.BatchScope) error {
		return synchronizer.AddIgnored(scope, folder, pattern)
	})
	if err != nil {
		return fmt.Errorf("unable to add ignore pattern: %w", err)
	}

	fmt.Printf("Added ignore pattern %q to %q\n", pattern, folder)
	return nil
}

var ignoreCommand = &cobra.Command{
	Use:   "ignore <folder> <pattern>",
	Short: "Add an ignore pattern to a folder's .cvsignore",
	Run:   Mainify(ignoreMain),
}

var ignoreConfiguration struct {
	help bool
}

func init() {
	flags := ignoreCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&ignoreConfiguration.help, "help", "h", false, "Show help information")
}
