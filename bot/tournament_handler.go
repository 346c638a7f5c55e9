package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"pokecasino/models"
	"pokecasino/service"
)

const colorTournamentEmbed = 0xf1c40f

func (b *Bot) handleTournament(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing tournament subcommand.")
		return
	}

	switch options[0].Name {
	case "create":
		b.handleTournamentCreate(s, i, options[0])
	case "join":
		b.handleTournamentJoin(s, i, options[0])
	case "list":
		b.handleTournamentList(s, i)
	case "start":
		b.handleTournamentStart(s, i, options[0])
	}
}

func (b *Bot) handleTournamentCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var size int
	for _, sub := range opt.Options {
		if sub.Name == "size" {
			size = int(sub.IntValue())
		}
	}

	tournament, err := b.tournamentService.Create(ctx, "", size, 0)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			b.respondWithError(s, i, "Tournament size must be at least 2.")
			return
		}
		log.Errorf("Error creating tournament: %v", err)
		b.respondWithError(s, i, "Unable to create tournament. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Tournament Created!",
		Description: fmt.Sprintf("Tournament **%s** has been created", tournament.ID),
		Color:       colorTournamentEmbed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Size", Value: fmt.Sprintf("%d players", tournament.Size), Inline: true},
			{Name: "Status", Value: "Registration Open", Inline: true},
			{Name: "Participants", Value: "0", Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Use /tournament join %s to participate", tournament.ID),
		},
	}
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleTournamentJoin(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordUser := interactionUser(i)

	var tournamentID string
	for _, sub := range opt.Options {
		if sub.Name == "id" {
			tournamentID = sub.StringValue()
		}
	}

	user, err := b.userService.GetOrCreateByUsername(ctx, discordUser.Username)
	if err != nil {
		log.Errorf("Error getting user %s: %v", discordUser.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	tournament, err := b.tournamentService.Join(ctx, tournamentID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			b.respondWithError(s, i, "Tournament not found.")
		case errors.Is(err, service.ErrTournamentClosed):
			b.respondWithError(s, i, "This tournament is no longer accepting participants.")
		case errors.Is(err, service.ErrAlreadyJoined):
			b.respondWithError(s, i, "You are already registered for this tournament.")
		case errors.Is(err, service.ErrTournamentFull):
			b.respondWithError(s, i, "This tournament is full.")
		default:
			log.Errorf("Error joining tournament %s: %v", tournamentID, err)
			b.respondWithError(s, i, "Unable to join tournament. Please try again.")
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Joined Tournament!",
		Description: fmt.Sprintf("You've joined **%s**", tournament.ID),
		Color:       colorTournamentEmbed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Participants", Value: fmt.Sprintf("%d/%d", len(tournament.Participants), tournament.Size)},
		},
	}
	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleTournamentList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	status := models.TournamentStatusRegistration
	tournaments, err := b.tournamentService.List(ctx, &status)
	if err != nil {
		log.Errorf("Error listing tournaments: %v", err)
		b.respondWithError(s, i, "Unable to list tournaments. Please try again.")
		return
	}
	if len(tournaments) == 0 {
		b.respondWithError(s, i, "No open tournaments found.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏆 Open Tournaments",
		Color: colorTournamentEmbed,
	}
	for _, t := range tournaments {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   t.ID,
			Value:  fmt.Sprintf("Participants: %d/%d", len(t.Participants), t.Size),
			Inline: false,
		})
	}
	b.respondWithEmbed(s, i, embed)
}

// handleTournamentStart completes a tournament with a randomly drawn winner.
// Bracket play is not simulated.
func (b *Bot) handleTournamentStart(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var tournamentID string
	for _, sub := range opt.Options {
		if sub.Name == "id" {
			tournamentID = sub.StringValue()
		}
	}

	tournament, err := b.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			b.respondWithError(s, i, "Tournament not found.")
			return
		}
		log.Errorf("Error getting tournament %s: %v", tournamentID, err)
		b.respondWithError(s, i, "Unable to start tournament. Please try again.")
		return
	}
	if len(tournament.Participants) == 0 {
		b.respondWithError(s, i, "Tournament has no participants.")
		return
	}

	winnerID := tournament.Participants[rand.Intn(len(tournament.Participants))]
	completed, err := b.tournamentService.Start(ctx, tournamentID, &winnerID)
	if err != nil {
		if errors.Is(err, service.ErrTournamentClosed) {
			b.respondWithError(s, i, "This tournament has already ended.")
			return
		}
		log.Errorf("Error starting tournament %s: %v", tournamentID, err)
		b.respondWithError(s, i, "Unable to start tournament. Please try again.")
		return
	}

	winnerName := winnerID
	if winner, err := b.userService.GetUser(ctx, winnerID); err == nil {
		winnerName = winner.Username
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Tournament Complete!",
		Description: fmt.Sprintf("**%s** has ended", completed.ID),
		Color:       colorTournamentEmbed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winner", Value: winnerName, Inline: true},
			{Name: "Participants", Value: fmt.Sprintf("%d", len(completed.Participants)), Inline: true},
		},
	}
	b.respondWithEmbed(s, i, embed)
}
