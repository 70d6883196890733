package models

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"user_id"`
	TotalXP        int    `json:"total_xp"`
	Level          int    `json:"level"`
	PhasesUnlocked int    `json:"phases_unlocked"`
}
