package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupLogger(t *testing.T) {
	setupLogger()

	if log.GetLevel() != log.InfoLevel {
		t.Fatalf("expected info level, got %s", log.GetLevel())
	}
	formatter, ok := log.StandardLogger().Formatter.(*log.TextFormatter)
	if !ok {
		t.Fatalf("expected text formatter, got %T", log.StandardLogger().Formatter)
	}
	if !formatter.FullTimestamp {
		t.Fatal("expected full timestamps enabled")
	}
}
