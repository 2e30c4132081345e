package application

import (
	"context"
	"fmt"
	"time"

	"cluesbot/application/dto"
	"cluesbot/events"
	"cluesbot/models"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

const (
	DailyLeaderboardCron   = "0 8 * * *"
	WeeklyLeaderboardCron  = "0 9 * * 1"
	MonthlyLeaderboardCron = "0 10 1 * *"

	scheduledTopN = 10
)

// LeaderboardWorker posts finished-period leaderboards on a schedule
type LeaderboardWorker struct {
	leaderboards LeaderboardQueries
	calendar     Calendar
	poster       DiscordPoster
	bus          *events.Bus
}

// NewLeaderboardWorker creates a new leaderboard worker. bus may be nil.
func NewLeaderboardWorker(
	leaderboards LeaderboardQueries,
	calendar Calendar,
	poster DiscordPoster,
	bus *events.Bus,
) *LeaderboardWorker {
	return &LeaderboardWorker{
		leaderboards: leaderboards,
		calendar:     calendar,
		poster:       poster,
		bus:          bus,
	}
}

// Start registers the daily, weekly and monthly jobs in loc and starts the scheduler.
// The returned function stops it.
func (w *LeaderboardWorker) Start(ctx context.Context, loc *time.Location) (func(), error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	jobs := []struct {
		name string
		cron string
		run  func(context.Context) error
	}{
		{"daily-leaderboard", DailyLeaderboardCron, w.PostDaily},
		{"weekly-leaderboard", WeeklyLeaderboardCron, w.PostWeekly},
		{"monthly-leaderboard", MonthlyLeaderboardCron, w.PostMonthly},
	}

	for _, job := range jobs {
		job := job
		_, err := scheduler.NewJob(
			gocron.CronJob(job.cron, false),
			gocron.NewTask(func() {
				if err := job.run(ctx); err != nil {
					log.WithError(err).WithField("job", job.name).Error("Scheduled leaderboard failed")
				}
			}),
			gocron.WithName(job.name),
		)
		if err != nil {
			_ = scheduler.Shutdown()
			return nil, fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	scheduler.Start()
	log.WithFields(log.Fields{
		"timezone": loc.String(),
		"jobs":     len(jobs),
	}).Info("Leaderboard worker started")

	return func() {
		if err := scheduler.Shutdown(); err != nil {
			log.WithError(err).Warn("Leaderboard scheduler did not shut down cleanly")
		}
	}, nil
}

// PostDaily announces yesterday's leaderboard
func (w *LeaderboardWorker) PostDaily(ctx context.Context) error {
	yesterday := w.calendar.Yesterday()
	board, err := w.leaderboards.Daily(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to build daily leaderboard: %w", err)
	}
	return w.post(ctx, dto.LeaderboardPostDTO{
		Period: dto.PeriodDaily,
		Range:  models.DateRange{Start: yesterday, End: yesterday, Label: string(yesterday)},
		Board:  board,
	})
}

// PostWeekly announces the previous ISO week's top players
func (w *LeaderboardWorker) PostWeekly(ctx context.Context) error {
	week := w.calendar.PreviousWeek()
	board, err := w.leaderboards.Range(ctx, week.Start, week.End, scheduledTopN)
	if err != nil {
		return fmt.Errorf("failed to build weekly leaderboard: %w", err)
	}
	return w.post(ctx, dto.LeaderboardPostDTO{Period: dto.PeriodWeekly, Range: week, Board: board})
}

// PostMonthly announces the previous calendar month's top players
func (w *LeaderboardWorker) PostMonthly(ctx context.Context) error {
	month := w.calendar.PreviousMonth()
	board, err := w.leaderboards.Range(ctx, month.Start, month.End, scheduledTopN)
	if err != nil {
		return fmt.Errorf("failed to build monthly leaderboard: %w", err)
	}
	return w.post(ctx, dto.LeaderboardPostDTO{Period: dto.PeriodMonthly, Range: month, Board: board})
}

func (w *LeaderboardWorker) post(ctx context.Context, post dto.LeaderboardPostDTO) error {
	if err := w.poster.PostLeaderboard(ctx, post); err != nil {
		return fmt.Errorf("failed to post %s leaderboard: %w", post.Period, err)
	}

	event := events.LeaderboardPostedEvent{
		Period: string(post.Period),
		Start:  post.Range.Start,
		End:    post.Range.End,
	}
	if post.HasWinner() {
		event.WinnerID = post.Board.Winner.PlayerID
		event.Players = post.Board.TotalPlayers
	}

	log.WithFields(log.Fields{
		"period":  post.Period,
		"start":   post.Range.Start,
		"end":     post.Range.End,
		"players": event.Players,
	}).Info("Posted scheduled leaderboard")

	if w.bus != nil {
		w.bus.Emit(ctx, event)
	}
	return nil
}
