package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zboralski/lattice/render"
)

var graphOut string

var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Render an object file's section link graph as Graphviz DOT",
	Long: `graph draws the cross-section references an object file declares
in its section header table: symbol and relocation tables linking to
their string tables, and relocation tables pointing at the sections
they patch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openLoaded(args[0])
		if err != nil {
			return err
		}
		defer r.Close()

		g, err := r.LinkGraph()
		if err != nil {
			return err
		}
		dot := render.DOT(g, args[0])
		if graphOut == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(graphOut, []byte(dot), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d nodes, %d edges)\n",
			graphOut, len(g.Nodes), len(g.Edges))
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphOut, "output", "o", "", "write DOT to file instead of stdout")
	rootCmd.AddCommand(graphCmd)
}
