// Package logging configures the standard logrus logger shared by the
// hosts and the render pipeline.
package logging

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and format of the standard logger. Output goes to
// stderr so that CLI results on stdout stay clean.
func Setup(level string, json bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	if json {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
