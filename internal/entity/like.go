package entity

import "time"

// Like is keyed by (user, joke) so a user can like a joke at most once.
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	JokeID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"joke_id"`
	Joke      Joke      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Like) TableName() string {
	return "likes"
}
