package bot

import (
	"fmt"
	"strings"

	"cluesbot/application/dto"
	"cluesbot/service"
)

// FormatSubmissionReply renders the chat reply to a share card
func FormatSubmissionReply(reply *dto.SubmissionReplyDTO) string {
	if reply == nil || reply.Submission == nil {
		return ""
	}

	sub := reply.Submission
	if !reply.Accepted {
		return fmt.Sprintf("🔒 %s, you've already logged Clues by Sam for %s. First score stands!", reply.PlayerName, sub.PuzzleDate)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Logged for **%s** (%s", reply.PlayerName, sub.PuzzleDate)
	if diff := sub.DifficultyLabel(); diff != "" {
		fmt.Fprintf(&b, ", %s", diff)
	}
	b.WriteString(")\n")

	score := reply.Score
	fmt.Fprintf(&b, "🟩 %d  🟡 %d  🟨 %d  ⏱️ %s\n", sub.Tiles.Green, sub.Tiles.Clue, sub.Tiles.Retry, sub.TimeText())

	speed := "n/a"
	if score.SpeedScore != nil {
		speed = fmt.Sprintf("%d", *score.SpeedScore)
	}
	fmt.Fprintf(&b, "Quality %d + Speed %s = %d × %.2f → **%d**\n",
		score.QualityScore, speed, score.Base, score.DifficultyMultiplier, score.Total)

	if reply.Rank > 0 {
		fmt.Fprintf(&b, "📊 #%d of %d today\n", reply.Rank, reply.Players)
	}

	if reply.Streak != nil && reply.Streak.CurrentStreak > 0 {
		fmt.Fprintf(&b, "Streak: %d day", reply.Streak.CurrentStreak)
		if reply.Streak.CurrentStreak != 1 {
			b.WriteString("s")
		}
		if flair := service.StreakFlair(reply.Streak.CurrentStreak); flair != "" {
			b.WriteString(" " + flair)
		}
		b.WriteString("\n")
	}

	if reply.Comment != "" {
		fmt.Fprintf(&b, "\n💬 %s", reply.Comment)
	}

	return strings.TrimRight(b.String(), "\n")
}
