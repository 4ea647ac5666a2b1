// Command resumectl works with resumes over the REST API: documents, labels,
// versions and AI suggestions that can be applied from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/api"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/documents"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/labels"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
)

const appName = "resumectl"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand.
type app struct {
	v *viper.Viper
}

func (a *app) client() *api.Client {
	c := api.New(a.v.GetString("backend"), a.v.GetString("token"))
	if t := a.v.GetDuration("timeout"); t > 0 {
		c.HTTPClient.Timeout = t
	}
	return c
}

// stores builds the document and label stores on one client. Deleting a
// label clears it from the documents the store already holds.
func (a *app) stores() (*documents.Store, *labels.Store) {
	c := a.client()
	docs := documents.NewStore(c, edit.Engine{})
	ls := labels.NewStore(c)
	ls.OnDelete(docs.ClearLabel)
	return docs, ls
}

func (a *app) format() string { return a.v.GetString("output") }

func rootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Resume documents, labels and AI suggestions from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(a.v.GetString("log-level"))
			switch a.format() {
			case outputText, outputJSON, outputYAML:
				return nil
			}
			return fmt.Errorf("unknown output format %q", a.format())
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("backend", "http://localhost:8001", "REST API base URL (BACKEND_URL)")
	pf.String("token", "", "bearer token (RESUME_TOKEN)")
	pf.StringP("output", "o", outputText, "output format: text, json or yaml")
	pf.Duration("timeout", api.DefaultTimeout, "request timeout")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlags(pf)
	_ = a.v.BindEnv("backend", "BACKEND_URL")
	_ = a.v.BindEnv("token", "RESUME_TOKEN")
	_ = a.v.BindEnv("log-level", "LOG_LEVEL")

	cmd.AddCommand(docsCmd(a), labelsCmd(a), chatCmd(a), tokenCmd(a))
	return cmd
}
