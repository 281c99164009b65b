package post

import (
	"time"
)

// Post est immuable après création, hors likes_count (compteur dénormalisé
// maintenu par trigger côté base).
type Post struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id" gorm:"index"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url"`
	LikesCount int64     `json:"likes_count"`
}

func (Post) TableName() string {
	return "posts"
}

// FeedItem est la ligne du feed : post + champs publics de l'auteur joints
type FeedItem struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url"`
	LikesCount int64     `json:"likes_count"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	AvatarURL  string    `json:"avatar_url"`
}
