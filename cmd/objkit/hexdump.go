package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var hexdumpFormat string

var hexdumpCmd = &cobra.Command{
	Use:   "hexdump FILE",
	Short: "Dump a file's address-space content as hex plus ASCII",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, diags, err := loadImage(args[0], hexdumpFormat)
		if err != nil {
			return err
		}
		printDiags(diags)
		if addr, ok := img.StartAddress(); ok {
			fmt.Printf("start address 0x%08x\n", addr)
		}
		img.Hexdump(os.Stdout)
		return nil
	},
}

func init() {
	hexdumpCmd.Flags().StringVar(&hexdumpFormat, "format", "",
		"input record format (default: probe the file)")
	rootCmd.AddCommand(hexdumpCmd)
}
