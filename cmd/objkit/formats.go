package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"objkit/internal/hexrec"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered hex record formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range hexrec.Formats() {
			c, _ := hexrec.Lookup(name)
			fmt.Printf("%-8s %s\n", name, c.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
