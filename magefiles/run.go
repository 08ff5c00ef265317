//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with lumen.toml.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "lumen.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed without a window for a few hundred frames.
func (Run) Headless() error {
	fmt.Println("Run engine headless...")
	if _, err := executeCmd("go",
		withArgs("run", "main.go", "lumen.toml"),
		withEnv("LUMEN_HEADLESS=true", "LUMEN_MAX_FRAMES=300"),
		withStream()); err != nil {
		return err
	}
	return nil
}
