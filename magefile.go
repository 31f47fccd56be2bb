//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

type CLI mg.Namespace

// Build compiles the foundrycap binary into ./bin. Set CLI_VERSION to stamp a
// release version, e.g. CLI_VERSION="1.0.0 (commit abc123)".
func (c CLI) Build(ctx context.Context) error {
	args := []string{"build", "-o", "./bin/foundrycap"}
	if version := os.Getenv("CLI_VERSION"); version != "" {
		args = append(args,
			"-ldflags",
			fmt.Sprintf("-X 'github.com/azure/foundry-capacity/internal.Version=%s'", version))
	}
	args = append(args, ".")

	cmdStr, cmd := runIn(".", "go", args...)
	fmt.Println(cmdStr)
	return cmd()
}

func (c CLI) Test(ctx context.Context) error {
	cmdStr, cmd := runIn(
		".",
		"go",
		"test",
		"./...",
	)
	fmt.Println(cmdStr)
	return cmd()
}

func runIn(cwd string, cmd string, args ...string) (string, func() error) {
	c := exec.Command(cmd, args...)
	c.Dir = cwd
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.String(), func() error {
		return c.Run()
	}
}
