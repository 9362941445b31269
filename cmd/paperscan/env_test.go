package main

import (
	"os"
	"testing"
	"time"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	if env.Now == nil {
		t.Error("Now should not be nil")
	}
	if env.Stdin != os.Stdin || env.Stdout != os.Stdout || env.Stderr != os.Stderr {
		t.Error("DefaultEnv should use the process streams")
	}
	if env.AssetLoader == nil {
		t.Fatal("AssetLoader should not be nil")
	}
	if _, err := env.AssetLoader.LoadStyle("lined"); err != nil {
		t.Errorf("built-in style should load: %v", err)
	}
}

func TestEnvironment_Since(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env := &Environment{Now: func() time.Time { return start.Add(1500*time.Millisecond + 400*time.Microsecond) }}

	if got := env.since(start); got != 1500*time.Millisecond {
		t.Errorf("since() = %v, want 1.5s", got)
	}
}
