package testutil

import (
	"pokecasino/models"
)

// CreateTestTournament creates an open tournament with default values
func CreateTestTournament(size int) *models.Tournament {
	return &models.Tournament{
		Size:         size,
		Status:       models.TournamentStatusRegistration,
		Participants: []string{},
	}
}

// CreateTestGameRecord creates a settled game record for the given user
func CreateTestGameRecord(userID string, result models.GameResult, bet, payout int64) *models.GameRecord {
	return &models.GameRecord{
		UserID:   userID,
		GameType: models.GameTypeCoinflip,
		Bet:      bet,
		Result:   result,
		Payout:   payout,
		GameData: map[string]any{
			"choice":  "heads",
			"outcome": "heads",
		},
	}
}

// CreateTestBalanceEntry creates an audit entry with specific amounts
func CreateTestBalanceEntry(userID string, before, after int64, transactionType models.TransactionType) *models.BalanceEntry {
	return &models.BalanceEntry{
		UserID:        userID,
		BalanceBefore: before,
		BalanceAfter:  after,
		ChangeAmount:  after - before,
		Type:          transactionType,
		Metadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestRoll creates a Pokemon roll snapshot for the given user
func CreateTestRoll(userID string, pokemonID int, name string, cost int64) *models.PokemonRoll {
	return &models.PokemonRoll{
		UserID:      userID,
		PokemonID:   pokemonID,
		PokemonName: name,
		PokemonData: map[string]any{
			"id":    pokemonID,
			"name":  name,
			"types": []string{"electric"},
		},
		Cost: cost,
	}
}
