package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/zx-core/spectrum/machine"
	"github.com/zx-core/spectrum/ula"
)

func newRunCmd() *cobra.Command {
	var variantName string
	var romPath string
	var frames int
	var dumpPath string
	var scale int
	var perf bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a machine for a fixed number of frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := parseVariant(variantName)
			if err != nil {
				return err
			}

			rom, err := os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("reading ROM: %w", err)
			}

			logger := loggerFromFlags(cmd)
			logger.Infof("starting %s: %d frame(s), rom=%s", variantName, frames, romPath)

			m := machine.New(variant, romPagesFor(variant, rom))
			m.SetLogger(logger)
			if perf {
				m.CPU.PerfEnabled = true
				m.CPU.StartPerfClock()
			}

			var frame []byte
			for i := 0; i < frames; i++ {
				frame, err = m.RunFrame()
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}

			printBanner(cmd.OutOrStdout())
			if isInteractiveTerminal() {
				fmt.Fprintf(cmd.OutOrStdout(), "\033[38;2;0;205;0mran %d frames on %s\033[0m\n", frames, variantName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "ran %d frames on %s\n", frames, variantName)
			}
			if perf {
				fmt.Fprintf(cmd.OutOrStdout(), "%.0f instructions/sec (%d total)\n", m.CPU.MIPS(), m.CPU.InstructionCount)
			}

			if dumpPath != "" && frame != nil {
				return dumpFramePNG(frame, scale, dumpPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&variantName, "variant", "48k", "machine variant: 48k, 128k, pentagon")
	cmd.Flags().StringVar(&romPath, "rom", "", "path to a raw ROM image for slot 0")
	cmd.Flags().IntVar(&frames, "frames", 50, "number of display frames to run")
	cmd.Flags().StringVar(&dumpPath, "dump-png", "", "write the final frame to this PNG path")
	cmd.Flags().IntVar(&scale, "scale", 2, "integer upscale factor for --dump-png")
	cmd.Flags().BoolVar(&perf, "perf", false, "report instructions/sec after the run")
	cmd.MarkFlagRequired("rom")

	return cmd
}

func parseVariant(name string) (machine.Variant, error) {
	switch name {
	case "48k":
		return machine.Variant48K, nil
	case "128k":
		return machine.Variant128K, nil
	case "pentagon":
		return machine.VariantPentagon, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want 48k, 128k, or pentagon)", name)
	}
}

// romPagesFor slices a flat ROM image into the 16 KiB pages the variant's
// Memory expects: one page for 48K, two for 128K/Pentagon (editor + 48
// BASIC), truncating or padding with zeros as needed.
func romPagesFor(variant machine.Variant, rom []byte) [][]byte {
	pageCount := 1
	if variant != machine.Variant48K {
		pageCount = 2
	}
	pages := make([][]byte, pageCount)
	for i := range pages {
		page := make([]byte, 0x4000)
		start := i * 0x4000
		if start < len(rom) {
			end := start + 0x4000
			if end > len(rom) {
				end = len(rom)
			}
			copy(page, rom[start:end])
		}
		pages[i] = page
	}
	return pages
}

func printBanner(w interface{ Write([]byte) (int, error) }) {
	fmt.Fprintln(w, "zxcore - a cycle-accurate ZX Spectrum core")
}

// dumpFramePNG upscales the ULA's FrameWidth x FrameHeight RGBA buffer by
// an integer factor and writes it to path, using nearest-neighbor scaling
// since the source is already a fully-resolved raster with no
// antialiasing to preserve.
func dumpFramePNG(frame []byte, scale int, path string) error {
	if scale < 1 {
		scale = 1
	}
	src := image.NewRGBA(image.Rect(0, 0, ula.FrameWidth, ula.FrameHeight))
	copy(src.Pix, frame)

	dst := image.NewRGBA(image.Rect(0, 0, ula.FrameWidth*scale, ula.FrameHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, dst)
}

// isInteractiveTerminal reports whether stdout looks like a real terminal,
// used to decide whether the run summary line is colored with ANSI escapes.
func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
