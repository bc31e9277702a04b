// Command wavecx is the WaveCX SDK companion tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wavecx/wavecx-go/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
