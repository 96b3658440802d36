package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cvsmeta/wsync/pkg/wsync"
)

func flushMain(command *cobra.Command, arguments []string) error {
	folder := wsync.PathRoot
	if len(arguments) > 0 {
		folder = arguments[0]
	}

	synchronizer, err := openSynchronizer(rootConfiguration.root)
	if err != nil {
		return fmt.Errorf("unable to open synchronizer: %w", err)
	}
	defer synchronizer.Shutdown()

	if err := synchronizer.Flush(folder, flushConfiguration.deep, nil); err != nil {
		return fmt.Errorf("unable to flush: %w", err)
	}

	fmt.Printf("Flushed %q\n", folder)
	return nil
}

var flushCommand = &cobra.Command{
	Use:   "flush [<folder>]",
	Short: "Force pending sync metadata for a folder to disk",
	Run:   Mainify(flushMain),
}

var flushConfiguration struct {
	help bool
	deep bool
}

func init() {
	flags := flushCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&flushConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVar(&flushConfiguration.deep, "deep", false, "Also purge cached metadata for descendant folders")
}
