package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/documents"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

func docsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"documents"},
		Short:   "List, show and change documents",
	}

	var label string
	list := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, ls := a.stores()
			docs, err := store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			if err := ls.Fetch(cmd.Context()); err != nil {
				return err
			}
			if label != "" {
				if err := ls.Select(label); err != nil {
					return err
				}
				docs = ls.Filter(docs)
			}
			return render(cmd.OutOrStdout(), a.format(), docs, func(w io.Writer) {
				printDocuments(w, docs, ls.Labels())
			})
		},
	}
	list.Flags().StringVar(&label, "label", "", "only documents with this label id")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a document section by section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := documents.NewStore(a.client(), edit.Engine{})
			d, err := store.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), d, func(w io.Writer) { printDocument(w, d) })
		},
	}

	var createLabel string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a document, seeded from the newest one with the same label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := documents.NewStore(a.client(), edit.Engine{})
			if createLabel != "" {
				// the template is picked from the fetched list
				if _, err := store.FetchAll(cmd.Context()); err != nil {
					return err
				}
			}
			d, err := store.Create(cmd.Context(), args[0], createLabel)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), d, func(w io.Writer) {
				fmt.Fprintf(w, "created %s (%s)\n", d.Title, d.ID)
			})
		},
	}
	create.Flags().StringVar(&createLabel, "label", "", "label id for the new document")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document and its versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := documents.NewStore(a.client(), edit.Engine{})
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	setLabel := &cobra.Command{
		Use:   "label <id> [label-id]",
		Short: "Set a document's label; omit label-id to clear it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := resume.NoLabel
			if len(args) == 2 {
				label = args[1]
			}
			store := documents.NewStore(a.client(), edit.Engine{})
			d, err := store.SetDocumentLabel(cmd.Context(), args[0], label)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), d, func(w io.Writer) {
				fmt.Fprintf(w, "%s label=%q\n", d.ID, d.Label)
			})
		},
	}

	versions := &cobra.Command{
		Use:   "versions <id>",
		Short: "List saved versions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := documents.NewStore(a.client(), edit.Engine{})
			vs, err := store.Versions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), vs, func(w io.Writer) { printVersions(w, vs) })
		},
	}

	restore := &cobra.Command{
		Use:   "restore <id> <version>",
		Short: "Restore a version; the restore is saved as a new version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("version must be a number: %w", err)
			}
			store := documents.NewStore(a.client(), edit.Engine{})
			d, err := store.RestoreVersion(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), d, func(w io.Writer) { printDocument(w, d) })
		},
	}

	move := &cobra.Command{
		Use:       "move <id> <section-id> up|down",
		Short:     "Move a section one place up or down",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store := documents.NewStore(a.client(), edit.Engine{})
			if _, err := store.Open(cmd.Context(), args[0]); err != nil {
				return err
			}
			var (
				d   resume.Document
				err error
			)
			switch args[2] {
			case "up":
				d, err = store.MoveUp(cmd.Context(), args[1])
			case "down":
				d, err = store.MoveDown(cmd.Context(), args[1])
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[2])
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.format(), d, func(w io.Writer) { printDocument(w, d) })
		},
	}

	cmd.AddCommand(list, show, create, del, setLabel, versions, restore, move)
	return cmd
}
