package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cvsmeta/wsync/pkg/wsync"
)

func statusMain(command *cobra.Command, arguments []string) error {
	folder := wsync.PathRoot
	if len(arguments) > 0 {
		folder = arguments[0]
	}

	synchronizer, err := openSynchronizer(rootConfiguration.root)
	if err != nil {
		return fmt.Errorf("unable to open synchronizer: %w", err)
	}
	defer synchronizer.Shutdown()

	if statusConfiguration.locks {
		scopes := synchronizer.ActiveScopes()
		if len(scopes) == 0 {
			fmt.Println("No active batch scopes")
			return nil
		}
		for _, scope := range scopes {
			fmt.Println(scope)
		}
		return nil
	}

	names, err := synchronizer.Members(folder)
	if err != nil {
		return fmt.Errorf("unable to list members of %q: %w", folder, err)
	}

	if len(names) == 0 {
		fmt.Println("No tracked members")
		return nil
	}

	for _, name := range names {
		child := wsync.PathJoin(folder, name)
		bytes, ok, err := synchronizer.GetSyncBytes(child)
		if err != nil {
			return fmt.Errorf("unable to read sync for %q: %w", child, err)
		}
		if !ok {
			fmt.Printf("%s\t(no sync recorded)\n", name)
			continue
		}
		record, decodeErr := wsync.DecodeResourceSync(bytes)
		if decodeErr != nil {
			fmt.Printf("%s\t(malformed: %v)\n", name, decodeErr)
			continue
		}
		status := "clean"
		if record.IsDeletion() {
			status = "removed"
		} else if record.IsAddition() {
			status = "added"
		}

		modState := ""
		switch synchronizer.GetModificationState(wsync.Resource{Path: child, Kind: wsync.KindFile}) {
		case wsync.ModificationStateDirty:
			modState = "\t[dirty]"
		case wsync.ModificationStateUnknown:
			modState = "\t[unknown]"
		}

		fmt.Printf("%s\trev %s\t%s%s\n", name, record.Revision, status, modState)
	}

	fmt.Println(humanize.Comma(int64(len(names))), "member(s)")
	return nil
}

var statusCommand = &cobra.Command{
	Use:   "status [<folder>]",
	Short: "Show tracked sync metadata for a folder's children",
	Run:   Mainify(statusMain),
}

var statusConfiguration struct {
	help  bool
	locks bool
}

func init() {
	flags := statusCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&statusConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVar(&statusConfiguration.locks, "locks", false, "Show currently active batch scopes instead of member status")
}
