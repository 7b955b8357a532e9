// Command flarectl is the local CLI for working with ReSpecTh-style
// combustion experiment documents: validate, inspect, export.
package main

import "github.com/flarelab/combust/internal/interfaces/cli"

func main() {
	cli.Execute()
}
