package api

import (
	"github.com/no0bAuntor/vocab-app/internal/db"
	"github.com/no0bAuntor/vocab-app/internal/services"
	"github.com/no0bAuntor/vocab-app/internal/wordbank"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	DB               *db.DB
	ProgressService  services.ProgressService
	Wordbank         *wordbank.Bank
	HistoryPageSize  int
	LeaderboardLimit int
}
