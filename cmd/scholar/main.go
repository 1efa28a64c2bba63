// Package main is the entry point for the scholar CLI.
package main

import "github.com/mesh-intelligence/scholar/internal/cli"

func main() {
	cli.Execute()
}
