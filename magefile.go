//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary.
var Default = Build

// Build builds the swiftconcur binary.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/swiftconcur", "./cmd/swiftconcur")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet across the module.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/swiftconcur")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
