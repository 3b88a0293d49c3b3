package challenge

import "time"

const (
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeSpecial = "special"
)

type Challenge struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Type        string    `gorm:"type:varchar(16);not null" json:"type"`
	Category    string    `json:"category"`
	RewardXP    int       `gorm:"not null" json:"rewardXp"`
	RewardCoins int64     `gorm:"not null" json:"rewardCoins"`
	IsActive    bool      `gorm:"not null;index" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Completion records that a user finished a challenge; at most one row
// per user/challenge pair.
type Completion struct {
	UserID      string    `gorm:"primaryKey"`
	ChallengeID string    `gorm:"primaryKey"`
	CompletedAt time.Time `gorm:"autoCreateTime"`
}

func (Completion) TableName() string {
	return "challenge_completions"
}

type WithStatus struct {
	Challenge
	Completed bool `json:"completed"`
}

// Reward is what completing a challenge paid out, echoed to the caller.
type Reward struct {
	Experience int   `json:"experience"`
	Coins      int64 `json:"coins"`
	Level      int   `json:"level"`
}
