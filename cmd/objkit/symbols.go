package main

import (
	"os"

	"github.com/spf13/cobra"

	"objkit/internal/output"
)

var symbolsOut string

var symbolsCmd = &cobra.Command{
	Use:   "symbols FILE",
	Short: "Export an object file's symbol tables as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openLoaded(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		syms, err := output.Symbols(r)
		if err != nil {
			return err
		}
		if symbolsOut != "" {
			return output.WriteJSONFile(symbolsOut, syms)
		}
		return output.WriteSymbolsJSON(os.Stdout, syms)
	},
}

func init() {
	symbolsCmd.Flags().StringVarP(&symbolsOut, "output", "o", "", "write JSON to file instead of stdout")
	rootCmd.AddCommand(symbolsCmd)
}
