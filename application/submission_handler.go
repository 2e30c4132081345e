package application

import (
	"context"
	"fmt"

	"cluesbot/application/dto"
	"cluesbot/models"
	"cluesbot/service"

	log "github.com/sirupsen/logrus"
)

// IncomingMessage is a chat message that may contain a share card
type IncomingMessage struct {
	MessageID   string
	ChannelID   string
	AuthorID    string
	Username    string
	DisplayName string
	Content     string
	IsBot       bool
}

// SubmissionHandler runs the parse, score, save pipeline for chat messages
type SubmissionHandler struct {
	scorer       *service.ScoringEngine
	ledger       SubmissionLedger
	leaderboards LeaderboardQueries
	streaks      StreakQueries
	commentary   Commentator
	calendar     Calendar
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(
	scorer *service.ScoringEngine,
	ledger SubmissionLedger,
	leaderboards LeaderboardQueries,
	streaks StreakQueries,
	commentary Commentator,
	calendar Calendar,
) *SubmissionHandler {
	return &SubmissionHandler{
		scorer:       scorer,
		ledger:       ledger,
		leaderboards: leaderboards,
		streaks:      streaks,
		commentary:   commentary,
		calendar:     calendar,
	}
}

// ParseAndScore parses text and scores it. ok is false when text is not a share card.
func (h *SubmissionHandler) ParseAndScore(text string) (*models.Submission, models.ScoreResult, bool) {
	sub, ok := ParseShareCard(text)
	if !ok {
		return nil, models.ScoreResult{}, false
	}
	return sub, h.scorer.Score(sub), true
}

// HandleMessage processes one chat message. It returns nil, nil for
// messages that are not share cards.
func (h *SubmissionHandler) HandleMessage(ctx context.Context, msg IncomingMessage) (*dto.SubmissionReplyDTO, error) {
	if msg.IsBot {
		return nil, nil
	}

	sub, score, ok := h.ParseAndScore(msg.Content)
	if !ok {
		return nil, nil
	}

	player := models.Player{
		ID:          msg.AuthorID,
		Username:    msg.Username,
		DisplayName: msg.DisplayName,
	}
	playerName := models.DisplayLabel(player.ID, player.Username, player.DisplayName)

	log.WithFields(log.Fields{
		"message_id":  msg.MessageID,
		"player_id":   player.ID,
		"puzzle_date": sub.PuzzleDate,
		"total_score": score.Total,
	}).Debug("Parsed share card")

	result, err := h.ledger.Save(ctx, sub, score, player)
	if err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	reply := &dto.SubmissionReplyDTO{
		PlayerName: playerName,
		Accepted:   result.Accepted,
		Submission: sub,
		Score:      score,
	}
	if !result.Accepted {
		log.WithFields(log.Fields{
			"player_id":   player.ID,
			"puzzle_date": sub.PuzzleDate,
			"reason":      result.Reason,
		}).Info("Duplicate share card ignored")
		return reply, nil
	}

	board, err := h.leaderboards.Daily(ctx, sub.PuzzleDate)
	if err != nil {
		log.WithError(err).WithField("puzzle_date", sub.PuzzleDate).Warn("Failed to rank new submission")
	} else {
		reply.Rank = service.Rank(board, player.ID)
		reply.Players = board.TotalPlayers
	}

	streak, err := h.streaks.Streak(ctx, player.ID, h.calendar.Today())
	if err != nil {
		log.WithError(err).WithField("player_id", player.ID).Warn("Failed to compute streak for reply")
	} else {
		reply.Streak = streak
	}

	reply.Comment = h.commentary.Comment(ctx, service.CommentaryRequest{
		PlayerName:   playerName,
		ScorePercent: service.ScorePercent(score.Total, h.scorer.MaxTotal()),
		Difficulty:   sub.DifficultyLabel(),
		Greens:       sub.Tiles.Green,
		Clues:        sub.Tiles.Clue,
		Retries:      sub.Tiles.Retry,
		TimeText:     sub.TimeText(),
		RankText:     rankText(reply.Rank, reply.Players),
	})

	return reply, nil
}

func rankText(rank, players int) string {
	if rank == 0 {
		return "unranked"
	}
	return fmt.Sprintf("#%d of %d", rank, players)
}
