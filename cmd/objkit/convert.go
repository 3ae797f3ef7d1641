package main

import (
	"os"

	"github.com/spf13/cobra"

	"objkit/internal/hexrec"
)

var (
	convertFrom   string
	convertTo     string
	convertRowLen int
	convertHeader string
	convertCount  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Convert between object files and hex record formats",
	Long: `convert decodes IN (an object file or any registered record
format) into an address-space image and encodes it to OUT in the format
named by --to.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, diags, err := loadImage(args[0], convertFrom)
		if err != nil {
			return err
		}
		printDiags(diags)

		codec, err := hexrec.Lookup(convertTo)
		if err != nil {
			return err
		}
		out, err := os.Create(args[1])
		if err != nil {
			return err
		}
		opts := hexrec.EncodeOptions{
			RowLength: convertRowLen,
			Count:     convertCount,
		}
		if convertHeader != "" {
			opts.Header = []byte(convertHeader)
		}
		if err := codec.Encode(out, img, opts); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "",
		"input record format (default: probe the file)")
	convertCmd.Flags().StringVar(&convertTo, "to", "srec", "output record format")
	convertCmd.Flags().IntVar(&convertRowLen, "row", 16, "payload bytes per data record")
	convertCmd.Flags().StringVar(&convertHeader, "header", "",
		"header record text, for formats that carry one")
	convertCmd.Flags().BoolVar(&convertCount, "count", false,
		"emit a record-count record, for formats that have one")
	rootCmd.AddCommand(convertCmd)
}
