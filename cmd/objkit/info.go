package main

import (
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "List an object file's header, tables and symbols",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openLoaded(args[0])
		if err != nil {
			return err
		}
		defer r.Close()
		return r.WriteInfo(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
