// Command roll2roll is the operator-facing CLI binary: a thin entrypoint
// over cmd/cli.
package main

import (
	"os"

	"github.com/roll2roll/roll2roll/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
