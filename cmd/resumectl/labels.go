package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/labels"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

func labelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage labels",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List labels with their document counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ls := a.stores()
			if err := ls.Fetch(cmd.Context()); err != nil {
				return err
			}
			docs, err := store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			out := ls.Labels()
			counts := labels.Counts(docs)
			return render(cmd.OutOrStdout(), a.format(), out, func(w io.Writer) { printLabels(w, out, counts) })
		},
	}

	create := &cobra.Command{
		Use:   "create <name> <color>",
		Short: "Create a label",
		Long:  fmt.Sprintf("Create a label. Colors: %v", resume.Colors),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := labels.NewStore(a.client()).Create(cmd.Context(), args[0], resume.Color(args[1]))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), l, func(w io.Writer) {
				fmt.Fprintf(w, "created %s (%s)\n", l.Name, l.ID)
			})
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name> <color>",
		Short: "Rename or recolor a label",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := labels.NewStore(a.client()).Update(cmd.Context(), args[0], args[1], resume.Color(args[2]))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), l, func(w io.Writer) {
				fmt.Fprintf(w, "updated %s (%s)\n", l.Name, l.ID)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a label; documents using it lose the label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ls := a.stores()
			docs, err := store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			tagged := labels.Counts(docs)[args[0]]
			if err := ls.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s, unlabeled documents: %d\n", args[0], tagged)
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}
