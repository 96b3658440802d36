// Package housekeeping runs periodic background maintenance for a set of
// active project synchronizers: detecting project roots that have vanished
// from disk and forgetting their phantom-cache state.
package housekeeping

import (
	"context"
	"os"
	"time"

	"github.com/cvsmeta/wsync/pkg/logging"
	"github.com/cvsmeta/wsync/pkg/wsync"
)

// pruneInterval is the interval at which Regularly sweeps for vanished
// project roots.
const pruneInterval = 1 * time.Hour

// Project pairs a synchronizer with the on-disk root it was created for,
// so Prune can tell whether that root still exists.
type Project struct {
	Root          string
	ProjectFolder wsync.Path
	Synchronizer  *wsync.Synchronizer
}

// Prune checks each project's root for existence and, for any that have
// vanished, deconfigures its project folder so the phantom cache doesn't
// keep accumulating state for a project that will never come back. It
// returns the roots it pruned.
func Prune(projects []Project, logger *logging.Logger) []string {
	var pruned []string
	for _, project := range projects {
		if _, err := os.Stat(project.Root); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			logger.Warnf("Unable to stat project root %q: %v", project.Root, err)
			continue
		}

		if err := project.Synchronizer.Deconfigure(project.ProjectFolder); err != nil {
			logger.Warnf("Unable to deconfigure vanished project %q: %v", project.Root, err)
			continue
		}
		pruned = append(pruned, project.Root)
	}
	return pruned
}

// Regularly runs Prune at a fixed interval against the result of calling
// list, until ctx is cancelled. It's designed to run as a background
// goroutine in a long-lived process (e.g. the CLI's daemon mode, if one is
// added), mirroring a standard ticker-driven maintenance loop.
func Regularly(ctx context.Context, list func() []Project, logger *logging.Logger) {
	logger.Info("Performing initial housekeeping")
	Prune(list(), logger)

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Info("Performing regular housekeeping")
			Prune(list(), logger)
		}
	}
}
