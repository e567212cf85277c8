package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type portEntry struct {
	port string
	desc string
}

var knownPorts = []portEntry{
	{"0xFE (even low byte)", "border/EAR/MIC out, keyboard/EAR in"},
	{"0x7FFD", "128K/Pentagon paging latch (ROM, RAM bank, screen bank, disable)"},
	{"0xBF3B", "ULAplus register select"},
	{"0xFF3B", "ULAplus data (palette write/read, mode register 64)"},
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List the I/O ports the core decodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range knownPorts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s  %s\n", p.port, p.desc)
			}
			return nil
		},
	}
}
