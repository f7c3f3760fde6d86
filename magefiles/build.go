//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

// Build compiles the shadows demo into bin/.
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/oxy-gl-shadows", "examples/shadows.go"), withStream())
	return err
}

// Run builds and starts the demo with the sample configuration.
func Run() error {
	mg.Deps(Build)
	_, err := executeCmd("bin/oxy-gl-shadows", withArgs("-config", "examples/shadows.toml"), withStream())
	return err
}
