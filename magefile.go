//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/MahanAzadBeast/n8n-render/internal/version"
)

// Default target - build the binary
var Default = Build

// Build builds the n8n-render binary into bin/.
func Build() error {
	ldflags := fmt.Sprintf(
		"-X %[1]s/internal/version.Version=%[2]s -X %[1]s/internal/version.CommitHash=%[3]s -X %[1]s/internal/version.BuildDate=%[4]s",
		"github.com/MahanAzadBeast/n8n-render",
		currentVersion(),
		currentCommit(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/n8n-render", "./cmd/n8n-render")
}

// Test runs the full test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet and, when available, golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := sh.Output("golangci-lint", "--version"); err != nil {
		fmt.Println("golangci-lint not found, skipping")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// QA runs lint then tests.
func QA() error {
	mg.Deps(Lint)
	return Test()
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}

func currentVersion() string {
	if out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil {
		return out
	}
	return version.Version
}

func currentCommit() string {
	if out, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil {
		return out
	}
	return version.CommitHash
}
