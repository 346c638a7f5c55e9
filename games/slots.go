package games

import (
	"fmt"
	"strings"

	"pokecasino/models"
)

var slotSymbols = []string{"🍒", "🔔", "7️⃣", "💎"}

// slotMultipliers is part of the payout contract
var slotMultipliers = map[string]int64{
	"🍒": 2,
	"🔔": 3,
	"7️⃣": 5,
	"💎": 10,
}

func (e *Engine) playSlots(bet int64) *Outcome {
	reels := []string{
		slotSymbols[e.rng.Intn(len(slotSymbols))],
		slotSymbols[e.rng.Intn(len(slotSymbols))],
		slotSymbols[e.rng.Intn(len(slotSymbols))],
	}

	result := models.GameResultLoss
	var payout int64

	if reels[0] == reels[1] && reels[1] == reels[2] {
		// Three of a kind
		result = models.GameResultWin
		payout = bet * slotMultipliers[reels[0]]
	} else if reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2] {
		// Two of a kind returns the stake
		result = models.GameResultTie
		payout = bet
	}

	flavor := "Better luck next time!"
	switch result {
	case models.GameResultWin:
		flavor = "Jackpot!"
	case models.GameResultTie:
		flavor = "Close!"
	}

	return &Outcome{
		Result: result,
		Payout: payout,
		GameData: map[string]any{
			"reels":       reels,
			"description": fmt.Sprintf("%s - %s", strings.Join(reels, " | "), flavor),
		},
	}
}
