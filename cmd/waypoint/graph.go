package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/spf13/cobra"
)

var (
	graphAgainst string
	graphCurrent string
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the document as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of --file.
With --against, nodes that differ from the stored document are highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
		run("generating graph", func(w *cli.Workspace) error {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			return runGraph(sc, w, docFile, graphAgainst, graphCurrent, os.Stdout)
		})
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphAgainst, "against", "", "Stored document id to diff against")
	graphCmd.Flags().StringVar(&graphCurrent, "current", "", "Path of the node to mark as selected")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(ctx context.Context, w *cli.Workspace, path, against, current string, out io.Writer) error {
	if err := w.Manager.Open(path); err != nil {
		return err
	}

	overlay := &graph.GraphOverlay{}
	if current != "" {
		p, err := cli.ParsePath(current)
		if err != nil {
			return err
		}
		overlay.Current = p
	}
	if against != "" {
		stored, err := w.Manager.Inspect(ctx, against)
		if err != nil {
			return err
		}
		if diff := domain.Diff(stored, w.Manager.Mission()); diff != nil {
			for _, c := range diff.Changes {
				// Diff paths start below the mission; graph paths start at it.
				overlay.Changed = append(overlay.Changed, append([]int{0}, c.Path...))
			}
		}
	}

	_, err := fmt.Fprint(out, graph.GenerateMermaid(w.Manager.Model(), overlay))
	return err
}
