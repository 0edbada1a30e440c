package main

import (
	"context"
	"fmt"

	"dagger/embedviz/internal/dagger"
)

const golangciLintVersion = "v2.8.0"

// lintOpts returns the common GolangcilintOpts used by both CheckLint and FixLint.
// It layers golangci-lint on top of goContainer() so the Go caches are already
// in place.
func (e *Embedviz) lintOpts() dagger.GolangcilintOpts {
	base := e.goContainer().
		WithExec([]string{
			"go",
			"install",
			fmt.Sprintf("github.com/golangci/golangci-lint/v2/cmd/golangci-lint@%s", golangciLintVersion),
		})

	return dagger.GolangcilintOpts{
		BaseCtr: base,
		Config:  e.Source.File(".golangci.yml"),
	}
}

// CheckLint runs golangci-lint against the embedviz source code without applying fixes.
func (e *Embedviz) CheckLint(ctx context.Context) (string, error) {
	return dag.Golangcilint(e.Source, e.lintOpts()).Check(ctx)
}

// FixLint runs golangci-lint against the embedviz source code with --fix, applying
// automatic fixes where possible, and returns the modified source directory.
func (e *Embedviz) FixLint(ctx context.Context) *dagger.Directory {
	return dag.Golangcilint(e.Source, e.lintOpts()).Lint()
}
