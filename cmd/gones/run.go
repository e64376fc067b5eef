package main

import (
	"fmt"
	"os"

	"github.com/claude/nescore/nes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var scale int
	var sramPath string

	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			emu := nes.New()
			if err := emu.LoadROM(f); err != nil {
				return err
			}

			if sramPath != "" {
				if sf, err := os.Open(sramPath); err == nil {
					err := emu.SRAMLoad(sf)
					sf.Close()
					if err != nil {
						fmt.Fprintf(os.Stderr, "warning: could not load sram: %v\n", err)
					}
				}
			}

			ebiten.SetWindowSize(screenWidth*scale, screenHeight*scale)
			ebiten.SetWindowTitle("gones - " + args[0])

			g := newGame(emu)
			err = ebiten.RunGame(g)

			if sramPath != "" {
				if sf, serr := os.Create(sramPath); serr == nil {
					emu.SRAMSave(sf)
					sf.Close()
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&scale, "scale", 3, "window scale factor")
	cmd.Flags().StringVar(&sramPath, "sram", "", "path to load/save battery-backed SRAM")
	return cmd
}
