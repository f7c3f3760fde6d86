//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

// Test runs every package test. None of them need a GPU or a display.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Vet runs go vet over the module.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Check runs Vet then Test.
func Check() {
	mg.SerialDeps(Vet, Test)
}
