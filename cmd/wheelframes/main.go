// Command wheelframes inspects progress wheel animations offline.
package main

import (
	"os"

	"github.com/go-drift/progresswheel/cmd/wheelframes/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
