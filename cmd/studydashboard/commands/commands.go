package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"study-dashboard/internal/bot"
	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
	"study-dashboard/internal/schedule"
	"study-dashboard/internal/service"
)

// NewRootCommand builds the CLI. Without a subcommand it runs the bot.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studydashboard",
		Short:         "Study dashboard Telegram bot",
		Long:          "Tracks academic tasks, the class schedule and mentoring work, through a Telegram bot or from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewAgendaCommand())
	rootCmd.AddCommand(NewTasksCommand())
	rootCmd.AddCommand(NewWeekCommand())
	return rootCmd
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the daily report scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// NewAgendaCommand prints the classes of a day.
func NewAgendaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda [day]",
		Short: "Show the classes of a day (0-6 or a Spanish day name, default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tomorrow, _ := cmd.Flags().GetBool("tomorrow")
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			day := time.Now().In(a.loc).Weekday()
			if len(args) == 1 {
				if day, err = parseDay(args[0]); err != nil {
					return err
				}
			}
			if tomorrow {
				day = schedule.Tomorrow(day)
			}
			printAgenda(cmd.OutOrStdout(), day, a.dashboard.ClassesOn(day))
			return nil
		},
	}
	cmd.Flags().Bool("tomorrow", false, "show the day after")
	return cmd
}

// NewTasksCommand lists pending tasks.
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List pending tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawView, _ := cmd.Flags().GetString("view")
			filter, _ := cmd.Flags().GetString("filter")

			view, ok := planner.ParseView(rawView)
			if !ok {
				return fmt.Errorf("unknown view %q, expected priority, subject or calendar", rawView)
			}
			if view == planner.ViewPriority {
				if p, ok := model.ParsePriority(filter); ok {
					filter = string(p)
				}
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			now := time.Now().In(a.loc)
			counts := a.dashboard.Counts(now)
			fmt.Fprintf(cmd.OutOrStdout(), "%d pending (%d high, %d medium, %d low), %d classes today\n\n",
				counts.Pending, counts.High, counts.Medium, counts.Low, counts.ClassesToday)
			printTasks(cmd.OutOrStdout(), a.dashboard.Visible(view, filter))
			return nil
		},
	}
	cmd.Flags().String("view", "priority", "priority, subject or calendar")
	cmd.Flags().String("filter", "", "priority (alta/media/baja) or exact subject name")
	return cmd
}

// NewWeekCommand prints the weekly activity report.
func NewWeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the activity of the last seven days",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			printWeek(cmd.OutOrStdout(), a.dashboard.Weekly(time.Now()), a.loc)
			return nil
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.cfg.ValidateBot(); err != nil {
		return err
	}

	telegramBot, err := bot.New(a.cfg.TelegramToken, a.cfg.OwnerChatID, a.dashboard, a.reminders, a.log.WithFields("component", "bot"))
	if err != nil {
		return err
	}

	if a.cfg.ReportTime != "" {
		scheduler := service.NewSchedulerService(a.loc, a.log.WithFields("component", "scheduler"))
		if _, err := scheduler.ScheduleDaily(a.cfg.ReportTime, func() {
			jobCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if err := telegramBot.SendDailyReport(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.WithError(err).Errorw("daily report")
			}
		}); err != nil {
			return fmt.Errorf("schedule report: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	a.log.Infow("study dashboard started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bot stopped: %w", err)
	}
	a.log.Infow("shutdown complete")
	return nil
}

// parseDay accepts 0 (Sunday) to 6 or a Spanish day name, accents optional.
func parseDay(raw string) (time.Weekday, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("day %d out of range 0-6", n)
		}
		return time.Weekday(n), nil
	}
	want := foldAccents(strings.ToLower(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if foldAccents(strings.ToLower(schedule.DayName(d))) == want {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", raw)
}

var accentFolder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

func foldAccents(s string) string {
	return accentFolder.Replace(s)
}

func printAgenda(w io.Writer, day time.Weekday, classes []model.ClassSession) {
	fmt.Fprintf(w, "%s\n", schedule.DayName(day))
	if len(classes) == 0 {
		fmt.Fprintln(w, "  free day")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range classes {
		fmt.Fprintf(tw, "  %s-%s\t%s\t%s\n", c.StartTime, c.EndTime, c.Subject, c.Room)
	}
	_ = tw.Flush()
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no pending tasks")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRIORITY\tDUE\tSUBJECT\tTITLE")
	for _, t := range tasks {
		id := t.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, t.Priority, t.DueDate.Format("2006-01-02 15:04"), t.Subject, t.Title)
	}
	_ = tw.Flush()
}

func printWeek(w io.Writer, r planner.WeeklyReport, loc *time.Location) {
	fmt.Fprintf(w, "effectiveness %d%%\n", r.Effectiveness)
	fmt.Fprintf(w, "academic %d, mentoring %d, personal %d\n", r.Academic, r.Mentoring, r.Personal)
	if len(r.Highlights) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, item := range r.Highlights {
		fmt.Fprintf(w, "  %s  %-9s  %s\n", item.CompletedAt.In(loc).Format("2006-01-02 15:04"), item.Category, item.Title)
	}
}
