package character

import "time"

// Traits describe a character's personality stats on a 0–100 scale.
type Traits struct {
	Resilience int `gorm:"not null" json:"resilience"`
	Growth     int `gorm:"not null" json:"growth"`
	Stability  int `gorm:"not null" json:"stability"`
}

var defaultTraits = Traits{Resilience: 50, Growth: 50, Stability: 50}

// MergeTraits applies the default record to unset trait values at the
// boundary where external character data enters the system.
func MergeTraits(t Traits) Traits {
	if t.Resilience == 0 {
		t.Resilience = defaultTraits.Resilience
	}
	if t.Growth == 0 {
		t.Growth = defaultTraits.Growth
	}
	if t.Stability == 0 {
		t.Stability = defaultTraits.Stability
	}
	return t
}

// Character is an avatar tied to a real company.
type Character struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	CompanyName string `json:"companyName"`
	Symbol      string `gorm:"index" json:"symbol"`
	Description string `json:"description"`
	Traits      Traits `gorm:"embedded;embeddedPrefix:trait_" json:"traits"`

	Price              float64   `json:"price"`
	PriceChange        float64   `json:"priceChange"`
	PriceChangePercent float64   `json:"priceChangePercent"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// CollectionEntry marks a character as collected by a user; one row per
// user/character pair.
type CollectionEntry struct {
	UserID      string    `gorm:"primaryKey" json:"userId"`
	CharacterID string    `gorm:"primaryKey" json:"characterId"`
	Level       int       `gorm:"not null" json:"level"`
	CollectedAt time.Time `gorm:"autoCreateTime" json:"collectedAt"`
}

func (CollectionEntry) TableName() string {
	return "character_collections"
}

type Collected struct {
	Character
	Level       int       `json:"level"`
	CollectedAt time.Time `json:"collectedAt"`
}
