package news

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Item is one simplified market-news story, attributed to the character
// whose company it concerns.
type Item struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	CharacterName string    `json:"characterName"`
	News          string    `gorm:"not null" json:"news"`
	Sentiment     string    `gorm:"type:varchar(16);not null" json:"sentiment"`
	Impact        string    `json:"impact"`
	PublishedAt   time.Time `gorm:"index" json:"publishedAt"`
}

func (Item) TableName() string {
	return "news_items"
}
