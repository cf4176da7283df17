package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/chxlky/onelook/database"
	"github.com/chxlky/onelook/internal/config"
	"github.com/chxlky/onelook/internal/deadlines"
	"github.com/chxlky/onelook/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	Version = "0.1.0"
	appName = "onelook"
)

// session is an open tracker plus the backend it must close.
type session struct {
	cfg     *config.Config
	tracker *deadlines.Tracker
	backend database.Backend
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		zap.L().Error("Error closing database", zap.Error(err))
	}
}

func openSession(configPath string, clock func() time.Time) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	backend, err := database.Open(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	tracker, err := deadlines.Open(deadlines.NewStore(backend, cfg.Storage.Key), clock)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &session{cfg: cfg, tracker: tracker, backend: backend}, nil
}

func rootCmd(out io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Unified assignment deadlines",
		Long: `OneLook keeps assignment deadlines from Canvas, Gradescope, Piazza
and anywhere else in one local list, sorted by what is due next.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (TOML)")

	cmd.AddCommand(
		listCmd(&configPath),
		addCmd(&configPath),
		removeCmd(&configPath),
		serveCmd(&configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

func listCmd(configPath *string) *cobra.Command {
	var (
		search string
		source string
		next7  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show upcoming assignments, soonest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := deadlines.ParseSourceFilter(source)
			if err != nil {
				return err
			}

			s, err := openSession(*configPath, time.Now)
			if err != nil {
				return err
			}
			defer s.Close()

			rows := s.tracker.View(deadlines.Filter{Search: search, Source: src, Next7Only: next7})
			return printAssignments(cmd.OutOrStdout(), rows, s.tracker.Now())
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "Match title, course, source or link")
	cmd.Flags().StringVarP(&source, "source", "s", "All", "Filter by source (All, Canvas, Gradescope, Piazza, Other)")
	cmd.Flags().BoolVar(&next7, "next7", true, "Only show assignments due within the next 7 days")
	return cmd
}

func printAssignments(out io.Writer, rows []models.Assignment, now time.Time) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "No items here yet. Use `onelook add` to create one.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDUE\tLEFT\tURGENCY\tSOURCE\tCOURSE\tTITLE\tLINK")
	for _, a := range rows {
		days := deadlines.DaysLeft(a.Due, now)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Due, deadlines.DaysLeftLabel(days), deadlines.UrgencyFor(days),
			a.Source, a.Course, a.Title, a.Link)
	}
	return tw.Flush()
}

func addCmd(configPath *string) *cobra.Command {
	var (
		title  string
		course string
		source string
		due    string
		link   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := models.ParseSource(source)
			if err != nil {
				return err
			}

			dueTime := models.NewDueTime(time.Now())
			if strings.TrimSpace(due) != "" {
				if dueTime, err = models.ParseDue(due); err != nil {
					return err
				}
			}

			s, err := openSession(*configPath, time.Now)
			if err != nil {
				return err
			}
			defer s.Close()

			created, err := s.tracker.Create(deadlines.NewAssignment{
				Title:  title,
				Course: course,
				Source: src,
				Due:    dueTime,
				Link:   link,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (%s) due %s\n", created.ID, created.Title, created.Course, created.Due)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Assignment title")
	cmd.Flags().StringVar(&course, "course", "", "Course, e.g. CIS 519")
	cmd.Flags().StringVarP(&source, "source", "s", string(models.SourceCanvas), "Canvas, Gradescope, Piazza or Other")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due time as YYYY-MM-DDTHH:mm (default now)")
	cmd.Flags().StringVarP(&link, "link", "l", "", "Optional link")
	return cmd
}

func removeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove assignments by id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath, time.Now)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, id := range args {
				removed, err := s.tracker.Remove(id)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "No assignment with id %s\n", id)
				}
			}
			return nil
		},
	}
}
