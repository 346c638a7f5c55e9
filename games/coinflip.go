package games

import (
	"fmt"

	"pokecasino/models"
)

const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

func (e *Engine) playCoinflip(bet int64, choice string) (*Outcome, error) {
	if choice != CoinHeads && choice != CoinTails {
		return nil, fmt.Errorf("coinflip choice must be %q or %q", CoinHeads, CoinTails)
	}

	outcome := CoinHeads
	if e.rng.Intn(2) == 1 {
		outcome = CoinTails
	}

	result := models.GameResultLoss
	var payout int64
	if choice == outcome {
		result = models.GameResultWin
		payout = bet * 2
	}

	return &Outcome{
		Result: result,
		Payout: payout,
		GameData: map[string]any{
			"choice":      choice,
			"outcome":     outcome,
			"description": fmt.Sprintf("Coin landed on %s. You chose %s.", outcome, choice),
		},
	}, nil
}
