package bot

import (
	"context"
	"fmt"
	"time"

	"cluesbot/application"
	"cluesbot/application/dto"
	"cluesbot/bot/common"
	"cluesbot/bot/features/leaderboard"
	"cluesbot/bot/features/streak"
	"cluesbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const messageTimeout = 30 * time.Second

// Config holds bot configuration
type Config struct {
	Token          string
	GuildID        string
	CluesChannelID string
}

// MessageHandler turns a chat message into a submission reply
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg application.IncomingMessage) (*dto.SubmissionReplyDTO, error)
}

// MessageRecorder counts traffic seen by the bot
type MessageRecorder interface {
	RecordMessageRead(messageType string)
}

type Bot struct {
	config      Config
	session     *discordgo.Session
	submissions MessageHandler
	leaderboard *leaderboard.Feature
	streak      *streak.Feature
	recorder    MessageRecorder
}

// New opens a Discord session, wires handlers and registers /clues
func New(config Config, submissions MessageHandler, leaderboards *leaderboard.Feature, streaks *streak.Feature, recorder MessageRecorder) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		config:      config,
		session:     dg,
		submissions: submissions,
		leaderboard: leaderboards,
		streak:      streaks,
		recorder:    recorder,
	}

	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Session exposes the underlying session for the channel poster
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// IsConnected reports whether the gateway connection is up
func (b *Bot) IsConnected() bool {
	return b.session != nil && b.session.DataReady
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !b.acceptsChannel(m.ChannelID) {
		return
	}
	b.record(observability.MessageTypeMessage)

	ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
	defer cancel()

	reply, err := b.submissions.HandleMessage(ctx, toIncomingMessage(m))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"message_id": m.ID,
			"author_id":  m.Author.ID,
		}).Error("Failed to handle share card")
		return
	}
	if reply == nil {
		return
	}
	b.record(observability.MessageTypeShareCard)

	if _, err := s.ChannelMessageSendReply(m.ChannelID, FormatSubmissionReply(reply), m.Reference()); err != nil {
		log.WithError(err).WithField("message_id", m.ID).Error("Failed to reply to share card")
	}
}

func (b *Bot) acceptsChannel(channelID string) bool {
	return b.config.CluesChannelID == "" || channelID == b.config.CluesChannelID
}

func (b *Bot) record(messageType string) {
	if b.recorder != nil {
		b.recorder.RecordMessageRead(messageType)
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != cluesCommand {
		return
	}
	b.record(observability.MessageTypeInteraction)

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: today, week, month, range or streak")
		return
	}

	sub := options[0]
	switch sub.Name {
	case "today", "week", "month", "range":
		b.leaderboard.HandleSubcommand(s, i, sub)
	case "streak":
		b.streak.HandleSubcommand(s, i, sub)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// toIncomingMessage maps a gateway message to the pipeline's input.
// Guild nicknames win over global display names.
func toIncomingMessage(m *discordgo.MessageCreate) application.IncomingMessage {
	msg := application.IncomingMessage{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.Username = m.Author.Username
		msg.DisplayName = m.Author.GlobalName
		msg.IsBot = m.Author.Bot
	}
	if m.Member != nil && m.Member.Nick != "" {
		msg.DisplayName = m.Member.Nick
	}
	return msg
}
