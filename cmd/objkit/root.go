package main

import (
	"os"

	"github.com/spf13/cobra"

	"objkit/internal/hexrec"
)

var (
	flagLenient bool
	flagNoJoin  bool
)

var rootCmd = &cobra.Command{
	Use:   "objkit",
	Short: "Inspect and convert firmware object and hex record files",
	Long: `objkit reads ELF-like 32-bit object files and checksummed hex
record files (Motorola S-records, Intel HEX, MOS Technology, EMON52),
builds an address-space image from them, and dumps, converts or graphs
the result.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagLenient, "lenient", false,
		"report bad records as warnings and keep decoding")
	rootCmd.PersistentFlags().BoolVar(&flagNoJoin, "no-join", false,
		"keep address-adjacent sections separate instead of merging them")
}

func decodePolicy() hexrec.Policy {
	if flagLenient {
		return hexrec.PolicyWarn
	}
	return hexrec.PolicyStrict
}
