package games

import (
	"fmt"
	"strconv"

	"pokecasino/models"
)

// rouletteReds is the standard red-number set. 0 is neither red nor odd nor even.
var rouletteReds = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func (e *Engine) playRoulette(bet int64, choice string) *Outcome {
	number := e.rng.Intn(37)

	isRed := rouletteReds[number]
	isBlack := number != 0 && !isRed
	isOdd := number%2 == 1
	isEven := number != 0 && number%2 == 0

	result := models.GameResultLoss
	var payout int64

	switch {
	case choice == "red" && isRed,
		choice == "black" && isBlack,
		choice == "odd" && isOdd,
		choice == "even" && isEven:
		result = models.GameResultWin
		payout = bet * 2
	case choice == strconv.Itoa(number):
		result = models.GameResultWin
		payout = bet * 35
	}

	color := "green"
	if isRed {
		color = "red"
	} else if isBlack {
		color = "black"
	}

	return &Outcome{
		Result: result,
		Payout: payout,
		GameData: map[string]any{
			"number":      number,
			"color":       color,
			"choice":      choice,
			"description": fmt.Sprintf("Ball landed on %d (%s). You bet on %s.", number, color, choice),
		},
	}
}
