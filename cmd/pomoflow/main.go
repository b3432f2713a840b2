// Package main is the single-binary entrypoint for pomoflow.
package main

import "github.com/pomoflow/pomoflow/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
