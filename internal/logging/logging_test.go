package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	if err := Setup("debug", true); err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
	if _, ok := log.StandardLogger().Formatter.(*log.JSONFormatter); !ok {
		t.Error("json formatter not installed")
	}

	if err := Setup("loud", false); err == nil {
		t.Error("unknown level accepted")
	}
}
