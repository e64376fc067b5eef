package main

import (
	"fmt"
	"os"

	"github.com/claude/nescore/internal/cartridge"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <rom>",
		Short: "Print iNES header fields for a ROM without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cart, err := cartridge.Load(f)
			if err != nil {
				return err
			}

			fmt.Printf("mapper:     %d\n", cart.MapperID)
			fmt.Printf("prg bytes:  %d\n", len(cart.PRG))
			fmt.Printf("chr bytes:  %d\n", len(cart.CHR))
			fmt.Printf("chr-ram:    %t\n", cart.HasCHRRAM)
			fmt.Printf("battery:    %t\n", cart.HasBattery)
			return nil
		},
	}
}
