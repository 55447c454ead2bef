//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

const testbedManifest = "testbed/manifest.toml"

type Run mg.Namespace

// Generates the testbed primitives with UV previews.
func (Run) Testbed() error {
	fmt.Println("Generate testbed primitives...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "-manifest", testbedManifest, "-uv-preview"), withStream()); err != nil {
		return err
	}
	return nil
}

// Regenerates the testbed primitives every time the manifest is saved.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	if _, err := executeCmd("bin/tessera", withArgs("-manifest", testbedManifest, "-watch", "-uv-preview"), withStream()); err != nil {
		return err
	}
	return nil
}
