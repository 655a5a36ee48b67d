package commands

import (
	"context"
	"errors"
	"flag"
	"io"
	"time"

	"todo_reminder/internal/bot"
	"todo_reminder/internal/clock"
	"todo_reminder/internal/exitcode"
	"todo_reminder/internal/reminder"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd runs the reminder scan until interrupted.
type WatchCmd struct {
	interval time.Duration
	lead     optionalDuration
	grace    optionalDuration

	// Clock is nil outside tests.
	Clock clock.Clock
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return []string{"remind"} }
func (c *WatchCmd) Synopsis() string  { return "Show reminders for tasks as they come due" }
func (c *WatchCmd) Usage() string {
	return "todo watch [--interval 1m] [--lead 0s] [--grace 1m]"
}

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.interval, "interval", 0, "")
	fs.Var(&c.lead, "lead", "")
	fs.Var(&c.grace, "grace", "")
}

// optionalDuration remembers whether the flag was given, so zero and
// negative values can be told apart from the config default.
type optionalDuration struct {
	d   time.Duration
	set bool
}

func (o *optionalDuration) String() string {
	if o == nil || !o.set {
		return ""
	}
	return o.d.String()
}

func (o *optionalDuration) Set(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	o.d, o.set = d, true
	return nil
}

func (o optionalDuration) or(def time.Duration) time.Duration {
	if o.set {
		return o.d
	}
	return def
}

func (c *WatchCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	interval := env.Config.ScanInterval
	if c.interval > 0 {
		interval = c.interval
	}
	window := reminder.Window{
		Lead:  c.lead.or(env.Config.ReminderLead),
		Grace: c.grace.or(env.Config.ReminderGrace),
	}

	if code := rerender(ctx, env, out, errOut); code != exitcode.Success {
		return code
	}

	notifier := reminder.MultiNotifier{
		reminder.NewDialogNotifier(out),
		reminder.LogNotifier{Logger: env.Logger},
	}
	if env.Config.TelegramBotToken != "" && env.Config.TelegramChatID != 0 {
		tg, err := bot.NewTelegramNotifier(env.Config.TelegramBotToken, env.Config.TelegramChatID, env.Logger)
		if err != nil {
			env.Logger.Warn("telegram notifications disabled", "error", err)
		} else {
			notifier = append(notifier, tg)
		}
	}
	s := reminder.NewScheduler(env.API, notifier, reminder.Options{
		Interval: interval,
		Window:   window,
		Clock:    c.Clock,
		Logger:   env.Logger,
	})

	env.Logger.Info("watching for reminders", "interval", interval, "lead", window.Lead, "grace", window.Grace)
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return fail(errOut, "Reminder scan stopped unexpectedly.", err)
	}
	return exitcode.Success
}
