package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	newTemplate bool
	newForce    bool
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a mission document",
	Long:  `Creates an empty mission (or the demo template with --template) and writes it to --file.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("creating document", func(w *cli.Workspace) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runNew(w, docFile, name, newTemplate, newForce, os.Stdout)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the document outline",
	Run: func(cmd *cobra.Command, args []string) {
		run("showing document", func(w *cli.Workspace) error {
			tty := term.IsTerminal(int(os.Stdout.Fd()))
			if tty {
				tui.PrintBanner(os.Stdout)
			}
			return runShow(w, docFile, tty, os.Stdout)
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a stored document to --file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("exporting document", func(w *cli.Workspace) error {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			if err := w.Manager.Checkout(sc, args[0]); err != nil {
				return err
			}
			if err := w.Manager.SaveAs(docFile); err != nil {
				return err
			}
			cli.PrintSystemMessage(os.Stdout, "Exported '%s' to %s.", args[0], docFile)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import [id]",
	Short: "Commit --file to the document store",
	Long:  `Commits the document in --file to the configured store. Without an id a new one is generated.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("importing document", func(w *cli.Workspace) error {
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			if err := w.Manager.Open(docFile); err != nil {
				return err
			}
			id, err := w.Manager.Commit(sc, id)
			if err != nil {
				return err
			}
			cli.PrintSystemMessage(os.Stdout, "Committed %s as '%s'.", docFile, id)
			return nil
		})
	},
}

func init() {
	newCmd.Flags().BoolVar(&newTemplate, "template", false, "Start from the demo mission")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd, showCmd, exportCmd, importCmd)
}

func runNew(w *cli.Workspace, path, name string, template, force bool, out io.Writer) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	var err error
	switch {
	case template:
		doc := w.Manager.Template()
		if name != "" {
			doc.Name = name
		}
		err = w.Manager.LoadDocument(doc)
	case name != "":
		err = w.Manager.NewDocument(name)
	}
	if err != nil {
		return err
	}
	if err := w.Manager.SaveAs(path); err != nil {
		return err
	}
	cli.PrintSystemMessage(out, "Created '%s' in %s.", w.Manager.Mission().Name, path)
	return nil
}

func runShow(w *cli.Workspace, path string, pretty bool, out io.Writer) error {
	if err := w.Manager.Open(path); err != nil {
		return err
	}
	md := tui.Outline(w.Manager.Model())
	if pretty {
		if rendered, err := tui.NewRenderer()(md); err == nil {
			md = rendered
		}
	}
	_, err := fmt.Fprint(out, md)
	return err
}
