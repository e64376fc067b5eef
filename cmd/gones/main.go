// Command gones is a host shell for the nescore emulation library: a
// windowed runner built on ebiten and a headless ROM-inspection utility.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gones",
		Short: "gones runs and inspects NES ROMs",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newInfoCmd())
	return root
}
