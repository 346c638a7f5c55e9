package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	colorRollEmbed  = 0x2ecc71
	colorListEmbed  = 0x3498db
	colorStatsEmbed = 0x9b59b6
)

func (b *Bot) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordUser := interactionUser(i)

	user, err := b.userService.GetOrCreateByUsername(ctx, discordUser.Username)
	if err != nil {
		log.Errorf("Error getting user %s: %v", discordUser.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	roll, err := b.pokemonService.FreeRoll(ctx, user.ID)
	if err != nil {
		log.Errorf("Error rolling pokemon for user %s: %v", user.ID, err)
		b.respondWithError(s, i, "Could not fetch a Pokemon. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎲 Pokemon Roll!",
		Description: fmt.Sprintf("**%s** (#%d)", capitalize(roll.PokemonName), roll.PokemonID),
		Color:       colorRollEmbed,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Rolled by " + discordUser.Username},
	}

	if types := dataStrings(roll.PokemonData, "types"); len(types) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Type(s)", Value: strings.Join(types, " / "), Inline: true,
		})
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Height", Value: fmt.Sprintf("%.1fm", dataFloat(roll.PokemonData, "height")), Inline: true},
		&discordgo.MessageEmbedField{Name: "Weight", Value: fmt.Sprintf("%.1fkg", dataFloat(roll.PokemonData, "weight")), Inline: true},
	)
	if sprite := dataString(roll.PokemonData, "sprite"); sprite != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: sprite}
	}

	b.respondWithEmbed(s, i, embed)
}

func (b *Bot) handleRecent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordUser := interactionUser(i)

	limit := 5
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "limit" && opt.IntValue() > 0 {
			limit = int(opt.IntValue())
		}
	}

	user, err := b.userService.GetOrCreateByUsername(ctx, discordUser.Username)
	if err != nil {
		log.Errorf("Error getting user %s: %v", discordUser.Username, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	rolls, err := b.pokemonService.History(ctx, user.ID, limit)
	if err != nil {
		log.Errorf("Error getting roll history for user %s: %v", user.ID, err)
		b.respondWithError(s, i, "Unable to fetch roll history. Please try again.")
		return
	}
	if len(rolls) == 0 {
		b.respondWithError(s, i, "No Pokemon rolls found.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Recent Pokemon Rolls",
		Description: fmt.Sprintf("Your last %d Pokemon rolls:", len(rolls)),
		Color:       colorListEmbed,
	}
	for idx, roll := range rolls {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s (#%d)", idx+1, capitalize(roll.PokemonName), roll.PokemonID),
			Value:  roll.Timestamp.Format("2006-01-02 15:04"),
			Inline: false,
		})
	}

	b.respondWithEmbed(s, i, embed)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Roll snapshots round-trip through JSON, so numbers may arrive as float64
// and string slices as []any.
func dataString(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func dataFloat(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func dataStrings(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
