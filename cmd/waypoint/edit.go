package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/session"
	"github.com/spf13/cobra"
)

var moveRow int

var addCmd = &cobra.Command{
	Use:   "add <kind> <parent>",
	Short: "Append a node (point, rail, segment, collection, device)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run("adding node", func(w *cli.Workspace) error {
			return runAdd(w, docFile, args[0], args[1], os.Stdout)
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove a node and everything under it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("removing node", func(w *cli.Workspace) error {
			return edit(w, docFile, func(m *session.Manager) error {
				idx, err := cli.Resolve(m.Model(), args[0])
				if err != nil {
					return err
				}
				return m.RemoveIndex(idx)
			})
		})
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap <path>",
	Short: "Reverse the children of a node",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("swapping node", func(w *cli.Workspace) error {
			return edit(w, docFile, func(m *session.Manager) error {
				idx, err := cli.Resolve(m.Model(), args[0])
				if err != nil {
					return err
				}
				return m.SwapIndex(idx)
			})
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <path> <name>",
	Short: "Rename a node",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run("renaming node", func(w *cli.Workspace) error {
			return edit(w, docFile, func(m *session.Manager) error {
				idx, err := cli.Resolve(m.Model(), args[0])
				if err != nil {
					return err
				}
				return m.Rename(idx, args[1])
			})
		})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <path> <parent>",
	Short: "Move a node under another parent",
	Long:  `Moves the node at <path> under <parent>, at --row (appends by default).`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run("moving node", func(w *cli.Workspace) error {
			return edit(w, docFile, func(m *session.Manager) error {
				src, err := cli.Resolve(m.Model(), args[0])
				if err != nil {
					return err
				}
				parent, err := cli.Resolve(m.Model(), args[1])
				if err != nil {
					return err
				}
				return m.MoveIndex(src, moveRow, parent)
			})
		})
	},
}

func init() {
	moveCmd.Flags().IntVar(&moveRow, "row", -1, "Target row under the parent")
	rootCmd.AddCommand(addCmd, rmCmd, swapCmd, renameCmd, moveCmd)
}

// edit opens path, applies fn and saves the result back.
func edit(w *cli.Workspace, path string, fn func(m *session.Manager) error) error {
	if err := w.Manager.Open(path); err != nil {
		return err
	}
	if err := fn(w.Manager); err != nil {
		return err
	}
	if !w.Manager.IsModified() {
		return nil
	}
	return w.Manager.Save()
}

func runAdd(w *cli.Workspace, path, kind, parent string, out io.Writer) error {
	k := domain.ParseKind(kind)
	if k == domain.KindUndefined || k == domain.KindMission {
		return fmt.Errorf("cannot add %q: %w", kind, domain.ErrUnsupported)
	}
	return edit(w, path, func(m *session.Manager) error {
		pidx, err := cli.Resolve(m.Model(), parent)
		if err != nil {
			return err
		}
		idx, err := m.Add(pidx, k)
		if err != nil {
			return err
		}
		return printNode(m.Model(), idx, out)
	})
}

func printNode(m *model.Model, idx model.Index, out io.Writer) error {
	path, err := m.Path(idx)
	if err != nil {
		return err
	}
	d, err := m.Descriptor(idx)
	if err != nil {
		return err
	}
	label := tui.Styled(d.KindLabel, d.KindLabel)
	_, err = fmt.Fprintf(out, "%s %s %s\n", cli.FormatPath(path), label, strconv.Quote(d.DisplayName))
	return err
}
