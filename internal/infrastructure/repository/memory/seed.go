package memory

import (
	"time"

	"github.com/riskibarqy/premier-league/internal/domain/player"
)

// SeedPlayers returns a small Arsenal squad sample used by the memory driver
// in development.
func SeedPlayers() []player.Record {
	date := player.NewDate(time.Date(2024, time.May, 19, 0, 0, 0, 0, time.UTC))
	seed := func(name, nation, pos, age string, number, minutes, goals, assists int, xg float64) player.Record {
		return player.Record{
			Player:   player.Ptr(name),
			Team:     player.Ptr("Arsenal"),
			Number:   player.Ptr(number),
			Nation:   player.Ptr(nation),
			Position: player.Ptr(pos),
			Age:      player.Ptr(age),
			Minutes:  player.Ptr(minutes),
			Goals:    player.Ptr(goals),
			Assists:  player.Ptr(assists),
			XG:       player.Ptr(xg),
			Date:     &date,
		}
	}

	return []player.Record{
		seed("Bukayo Saka", "eng ENG", "FW", "22-257", 7, 2891, 16, 9, 14.2),
		seed("Martin Ødegaard", "no NOR", "MF", "25-152", 8, 3046, 8, 10, 7.1),
		seed("Declan Rice", "eng ENG", "MF", "25-131", 41, 3187, 7, 8, 3.8),
		seed("William Saliba", "fr FRA", "DF", "23-071", 2, 3420, 2, 1, 2.3),
		seed("David Raya", "es ESP", "GK", "28-254", 22, 2880, 0, 0, 0),
		seed("Kai Havertz", "de GER", "FW,MF", "24-339", 29, 2431, 13, 7, 11.9),
	}
}
