package profile

import (
	"fmt"
	"net/url"
	"time"
)

type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID venant de auth.users
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	IsAdmin   bool      `json:"is_admin"`
}

func (Profile) TableName() string {
	return "profiles"
}

// PlaceholderAvatar génère l'URL d'avatar par défaut à partir du nom complet
func PlaceholderAvatar(fullName string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=667eea&color=fff&size=200",
		url.QueryEscape(fullName))
}

// AvatarOrPlaceholder retourne l'avatar du profil, ou le placeholder généré
func (p Profile) AvatarOrPlaceholder() string {
	if p.AvatarURL != "" {
		return p.AvatarURL
	}
	return PlaceholderAvatar(p.FullName)
}
