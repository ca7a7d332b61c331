package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kiriseka/portfolio/internal/content"
	"github.com/kiriseka/portfolio/internal/skills"
	"github.com/kiriseka/portfolio/internal/store"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect portfolio content",
}

var contentCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a content document (the embedded one when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			doc *content.Document
			err error
		)
		if len(args) == 1 {
			doc, err = content.Load(args[0])
		} else {
			doc, err = content.Default()
		}
		if err != nil {
			return err
		}
		if _, err := skills.BuildScene(doc.Skills); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d projects, %d skills, %d links, %d log entries, %d palette items\n",
			len(doc.Projects), len(doc.Skills.Nodes), len(doc.Skills.Links), len(doc.Log), len(doc.Palette))
		return nil
	},
}

var visitorsCmd = &cobra.Command{
	Use:   "visitors",
	Short: "Manage recorded visitor metrics",
}

var visitorsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete visitor records older than VISITOR_RETENTION",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.PruneVisitors(cmd.Context(), time.Now(), cfg.VisitorRetention)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d visitor records older than %s\n", n, cfg.VisitorRetention)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, contentCmd, visitorsCmd)
	contentCmd.AddCommand(contentCheckCmd)
	visitorsCmd.AddCommand(visitorsPruneCmd)
}
