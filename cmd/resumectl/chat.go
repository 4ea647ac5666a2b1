package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/api"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/assistant"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/config"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/documents"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
)

type chatResult struct {
	Route     assistant.Route      `json:"route"`
	Message   string               `json:"message"`
	Proposals []assistant.Proposal `json:"proposals"`
}

func chatCmd(a *app) *cobra.Command {
	var (
		section string
		ats     bool
		direct  bool
		reveal  bool
		apply   []int
	)
	cmd := &cobra.Command{
		Use:   "chat <document-id> <message>",
		Short: "Ask for suggestions on a document and optionally apply them",
		Long: `Ask the assistant about a document. The reply's suggested edits are
listed by index; --apply accepts the given indexes and saves the result.

With --section the message is a question about one section. With --ats the
message is a job description to score the document against.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := a.client()
			store := documents.NewStore(c, edit.Engine{})
			if _, err := store.Open(ctx, args[0]); err != nil {
				return err
			}

			opts := assistant.Options{Backend: c, Documents: store}
			if direct {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				if chain := ai.ChainFromConfig(ctx, cfg.AI); chain.Len() > 0 {
					opts.Direct = chain
					opts.HistoryLimit = cfg.AI.HistoryLimit
				} else {
					logger.Warn("no AI provider key configured; direct answers are unavailable")
				}
			}
			s := assistant.New(opts)

			message := strings.Join(args[1:], " ")
			var (
				reply ai.Reply
				route assistant.Route
				err   error
			)
			switch {
			case ats:
				reply, route, err = s.ATS(ctx, message)
			case section != "":
				reply, route, err = s.AnalyzeSection(ctx, section, message)
			default:
				reply, route, err = s.Send(ctx, message)
			}
			if err != nil {
				return err
			}
			logger.Debugf("chat reply route=%s edits=%d", route, len(reply.Edits))

			var applyErr error
			for _, i := range apply {
				if _, err := s.Accept(ctx, i); err != nil && applyErr == nil {
					applyErr = fmt.Errorf("edit %d: %w", i, err)
				}
			}

			res := chatResult{Route: route, Message: reply.Message, Proposals: s.Proposals()}
			if err := render(cmd.OutOrStdout(), a.format(), res, func(w io.Writer) {
				if reveal {
					revealMessage(ctx, w, reply.Message)
				} else {
					fmt.Fprintln(w, reply.Message)
				}
				printProposals(w, res.Proposals)
			}); err != nil {
				return err
			}
			return applyErr
		},
	}
	f := cmd.Flags()
	f.StringVar(&section, "section", "", "ask about the section with this id")
	f.BoolVar(&ats, "ats", false, "treat the message as a job description and run an ATS check")
	f.BoolVar(&direct, "direct", false, "answer with a local model when the backend AI is down")
	f.BoolVar(&reveal, "reveal", false, "print the reply word by word")
	f.IntSliceVar(&apply, "apply", nil, "indexes of suggested edits to accept")
	return cmd
}

// revealMessage prints text as ai.Reveal uncovers it, writing only what each
// step adds.
func revealMessage(ctx context.Context, w io.Writer, text string) {
	shown := 0
	for prefix := range ai.Reveal(ctx, text, ai.DefaultRevealInterval) {
		fmt.Fprint(w, prefix[shown:])
		shown = len(prefix)
	}
	fmt.Fprintln(w)
}

var _ assistant.Backend = (*api.Client)(nil)
