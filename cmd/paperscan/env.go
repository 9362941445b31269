package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-paperscan"
)

// Environment is what a paperscan command touches outside its arguments.
// Tests swap the streams and the clock for buffers and a fixed time.
type Environment struct {
	// Now stamps batch timings.
	Now func() time.Time

	// Stdin feeds the session REPL.
	Stdin io.Reader

	// Stdout gets usage, the session gallery and doctor reports.
	Stdout io.Writer

	// Stderr gets progress lines, warnings and error hints.
	Stderr io.Writer

	// AssetLoader resolves paper styles. Commands replace it when
	// assets.basePath names a custom directory.
	AssetLoader paperscan.AssetLoader
}

// DefaultEnv wires the process streams, the wall clock and the embedded
// paper styles.
func DefaultEnv() *Environment {
	// An empty base path selects the embedded styles and cannot fail.
	loader, _ := paperscan.NewAssetLoader("")
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: loader,
	}
}

// since reports the time elapsed from start, rounded for display.
func (e *Environment) since(start time.Time) time.Duration {
	return e.Now().Sub(start).Round(time.Millisecond)
}
