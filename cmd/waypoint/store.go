package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage documents in the configured store",
}

var docListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored documents",
	Run: func(cmd *cobra.Command, args []string) {
		run("listing documents", func(w *cli.Workspace) error {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			return runDocList(sc, w, os.Stdout)
		})
	},
}

var docInspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Print the outline of a stored document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("inspecting document", func(w *cli.Workspace) error {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			return runDocInspect(sc, w, args[0], os.Stdout)
		})
	},
}

var docRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete stored documents",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("deleting document", func(w *cli.Workspace) error {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			for _, id := range args {
				if err := w.Manager.Delete(sc, id); err != nil {
					return err
				}
				cli.PrintSystemMessage(os.Stdout, "Document '%s' deleted.", id)
			}
			return nil
		})
	},
}

func init() {
	docCmd.AddCommand(docListCmd, docInspectCmd, docRmCmd)
	rootCmd.AddCommand(docCmd)
}

func runDocList(ctx context.Context, w *cli.Workspace, out io.Writer) error {
	ids, err := w.Manager.Documents(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No documents found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

func runDocInspect(ctx context.Context, w *cli.Workspace, id string, out io.Writer) error {
	doc, err := w.Manager.Inspect(ctx, id)
	if err != nil {
		return err
	}
	m := model.New()
	if err := m.LoadDocument(doc); err != nil {
		return err
	}
	_, err = fmt.Fprint(out, tui.Outline(m))
	return err
}
