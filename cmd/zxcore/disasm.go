package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zx-core/spectrum/z80"
)

// flatMemory is a plain byte slice addressed modulo 64 KiB, enough context
// for Disassemble without pulling in a full Memory/paging setup.
type flatMemory []byte

func (m flatMemory) Read(addr uint16) byte {
	if int(addr) >= len(m) {
		return 0xFF
	}
	return m[addr]
}

func newDisasmCmd() *cobra.Command {
	var origin uint16
	var count int

	cmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a raw binary starting at an origin address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			mem := make(flatMemory, 0x10000)
			copy(mem[origin:], data)

			lines := z80.Disassemble(mem, origin, count)
			for _, line := range lines {
				branch := ""
				if line.IsBranch {
					branch = fmt.Sprintf("  ; -> $%04X", line.BranchTarget)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%04X  %-11s  %s%s\n", line.Addr, line.Bytes, line.Mnemonic, branch)
			}
			return nil
		},
	}

	cmd.Flags().Uint16Var(&origin, "origin", 0, "address the file is loaded at")
	cmd.Flags().IntVar(&count, "count", 20, "number of instructions to disassemble")

	return cmd
}
