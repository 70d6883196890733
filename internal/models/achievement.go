package models

import "time"

// Achievement is a badge earned by a user. IDs are unique within a user's list.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	DateEarned  time.Time `json:"date_earned"`
}
