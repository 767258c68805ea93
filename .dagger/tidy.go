package main

import (
	"context"
	"errors"
	"fmt"

	"dagger/serialscope/internal/dagger"
)

// modSnapshot copies go.mod and go.sum aside so they can be diffed after a
// command rewrites them.
const modSnapshot = "cp go.mod /tmp/go.mod.orig && cp go.sum /tmp/go.sum.orig"

const modDiff = "diff -u /tmp/go.mod.orig go.mod && diff -u /tmp/go.sum.orig go.sum"

// CheckGoMod verifies the module cache checksums and fails when
// "go mod tidy" would change go.mod or go.sum.
//
// +check
func (s *Serialscope) CheckGoMod(ctx context.Context) (string, error) {
	if _, err := s.goContainer().
		WithExec([]string{"go", "mod", "verify"}).
		Stdout(ctx); err != nil {
		return "", modCheckError("go mod verify failed", err)
	}

	out, err := s.goContainer().
		WithExec([]string{"sh", "-c", modSnapshot}).
		WithExec([]string{"go", "mod", "tidy"}).
		WithExec([]string{"sh", "-c", modDiff}).
		Stdout(ctx)
	if err != nil {
		return "", modCheckError("go.mod or go.sum are not tidy: run 'go mod tidy' and commit the changes", err)
	}

	return fmt.Sprintf("go.mod and go.sum are verified and tidy: %s", out), nil
}

func modCheckError(msg string, err error) error {
	var e *dagger.ExecError
	if errors.As(err, &e) {
		return fmt.Errorf("%s\n\n%s%s", msg, e.Stdout, e.Stderr)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
