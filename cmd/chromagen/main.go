// Chromagen extracts dominant colour palettes from images.
package main

import (
	"github.com/chromagen/chromagen/internal/cli"
)

func main() {
	cli.Execute()
}
