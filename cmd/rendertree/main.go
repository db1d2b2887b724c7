// Command rendertree loads a markup document, styles it, runs its inline
// scripts and shows the resulting box tree in a window, as a PNG snapshot or
// as a text dump.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
