package models

import "time"

// Goal represents a savings goal
type Goal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	IsCompleted   bool       `json:"is_completed"`
	// CompletedAt is set by the goal-management subsystem when the goal is
	// reached. UpdatedAt is not a stand-in for it: any edit moves UpdatedAt.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
