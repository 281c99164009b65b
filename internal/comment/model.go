package comment

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id" gorm:"index"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Username  string    `json:"username" gorm:"<-:false"` // résolu par jointure à la lecture, jamais écrit
}

func (Comment) TableName() string {
	return "comments"
}
