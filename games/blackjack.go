package games

import (
	"fmt"

	"pokecasino/models"
)

// drawCard draws a pseudo-card with face value 1-10. Values above ten collapse
// to 10, mirroring the 10/J/Q/K group of a real deck.
func (e *Engine) drawCard() int {
	card := e.rng.Intn(13) + 1
	if card > 10 {
		card = 10
	}
	return card
}

// handValue totals a hand, promoting aces from 1 to 11 one at a time while the
// hand stays at or under 21.
func handValue(cards []int) int {
	value := 0
	aces := 0
	for _, card := range cards {
		value += card
		if card == 1 {
			aces++
		}
	}
	for aces > 0 && value+10 <= 21 {
		value += 10
		aces--
	}
	return value
}

// playBlackjack resolves a single-shot dealer-only round: the player takes no
// actions, the dealer draws below 17.
func (e *Engine) playBlackjack(bet int64) *Outcome {
	playerCards := []int{e.drawCard(), e.drawCard()}
	dealerCards := []int{e.drawCard(), e.drawCard()}

	playerValue := handValue(playerCards)
	dealerValue := handValue(dealerCards)

	for dealerValue < 17 {
		dealerCards = append(dealerCards, e.drawCard())
		dealerValue = handValue(dealerCards)
	}

	var result models.GameResult
	var payout int64

	switch {
	case playerValue > 21:
		result = models.GameResultLoss
	case dealerValue > 21:
		result = models.GameResultWin
		payout = bet * 2
	case playerValue > dealerValue:
		result = models.GameResultWin
		payout = bet * 2
	case playerValue == dealerValue:
		result = models.GameResultTie
		payout = bet
	default:
		result = models.GameResultLoss
	}

	return &Outcome{
		Result: result,
		Payout: payout,
		GameData: map[string]any{
			"playerCards": playerCards,
			"dealerCards": dealerCards,
			"playerValue": playerValue,
			"dealerValue": dealerValue,
			"description": fmt.Sprintf("Player: %d, Dealer: %d", playerValue, dealerValue),
		},
	}
}
