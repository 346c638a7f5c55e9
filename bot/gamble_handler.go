package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pokecasino/service"
)

const colorGambleEmbed = 0xe67e22

func (b *Bot) handleGambleLog(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordUser := interactionUser(i)

	var winnerUser, loserUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "winner":
			winnerUser = opt.UserValue(s)
		case "loser":
			loserUser = opt.UserValue(s)
		}
	}
	if winnerUser == nil || loserUser == nil {
		b.respondWithError(s, i, "Please provide both a winner and a loser.")
		return
	}

	winner, err := b.userService.GetOrCreateByUsername(ctx, winnerUser.Username)
	if err != nil {
		log.Errorf("Error getting winner %s: %v", winnerUser.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	loser, err := b.userService.GetOrCreateByUsername(ctx, loserUser.Username)
	if err != nil {
		log.Errorf("Error getting loser %s: %v", loserUser.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	loggedBy, err := b.userService.GetOrCreateByUsername(ctx, discordUser.Username)
	if err != nil {
		log.Errorf("Error getting logger %s: %v", discordUser.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, err := b.gamblingLogService.LogResult(ctx, winner.ID, loser.ID, loggedBy.ID); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			b.respondWithError(s, i, "Winner and loser must be different users.")
			return
		}
		log.Errorf("Error logging gambling result: %v", err)
		b.respondWithError(s, i, "Unable to record result. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎰 Gambling Result Logged!",
		Description: "Result has been recorded",
		Color:       colorGambleEmbed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winner", Value: winnerUser.Mention(), Inline: true},
			{Name: "Loser", Value: loserUser.Mention(), Inline: true},
			{Name: "Logged by", Value: discordUser.Mention(), Inline: true},
		},
	}
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleLogs(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	limit := 10
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "limit" && opt.IntValue() > 0 {
			limit = int(opt.IntValue())
		}
	}

	logs, err := b.gamblingLogService.Recent(ctx, limit)
	if err != nil {
		log.Errorf("Error getting gambling logs: %v", err)
		b.respondWithError(s, i, "Unable to fetch gambling logs. Please try again.")
		return
	}
	if len(logs) == 0 {
		b.respondWithError(s, i, "No gambling logs found.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎰 Recent Gambling Results",
		Description: fmt.Sprintf("Last %d gambling results:", len(logs)),
		Color:       colorGambleEmbed,
	}
	for idx, entry := range logs {
		winnerName := b.usernameFor(ctx, entry.WinnerID)
		loserName := b.usernameFor(ctx, entry.LoserID)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s vs %s", idx+1, winnerName, loserName),
			Value:  fmt.Sprintf("Winner: %s\nDate: %s", winnerName, entry.Timestamp.Format("2006-01-02 15:04")),
			Inline: false,
		})
	}
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	target := interactionUser(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	user, err := b.userService.GetOrCreateByUsername(ctx, target.Username)
	if err != nil {
		log.Errorf("Error getting user %s: %v", target.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	stats, err := b.statsService.UserStats(ctx, user.ID)
	if err != nil {
		log.Errorf("Error getting stats for user %s: %v", user.ID, err)
		b.respondWithError(s, i, "Unable to fetch stats. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Stats for %s", target.Username),
		Color: colorStatsEmbed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Pokemon Rolls", Value: fmt.Sprintf("%d", stats.RollCount), Inline: true},
			{Name: "Gambling Wins", Value: fmt.Sprintf("%d", stats.GamblingWins), Inline: true},
			{Name: "Gambling Losses", Value: fmt.Sprintf("%d", stats.GamblingLosses), Inline: true},
		},
	}
	if stats.LastRoll != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Last Pokemon",
			Value:  fmt.Sprintf("%s (#%d)", capitalize(stats.LastRoll.PokemonName), stats.LastRoll.PokemonID),
			Inline: false,
		})
	}
	if target.Avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")}
	}

	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) usernameFor(ctx context.Context, userID string) string {
	user, err := b.userService.GetUser(ctx, userID)
	if err != nil || user == nil {
		if len(userID) > 8 {
			return "User " + userID[:8] + "..."
		}
		return "User " + userID
	}
	return user.Username
}
