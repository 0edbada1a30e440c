// Embedviz CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/embedviz/internal/dagger"
)

// Embedviz is the main module for the Embedviz CI/CD pipeline
type Embedviz struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Embedviz CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Embedviz {
	return &Embedviz{
		Source: source,
	}
}

// goContainer returns a Debian Bookworm-based Go container with the project
// source mounted.
//
// It is the shared foundation for tests, builds, and linting.
func (e *Embedviz) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", e.Source)
}

// Test runs the embedviz unit tests via "go test"
func (e *Embedviz) Test(ctx context.Context) (string, error) {
	return e.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
