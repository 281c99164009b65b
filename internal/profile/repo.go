package profile

import (
	"errors"

	"gorm.io/gorm"

	"github.com/imincognito/socialhub/internal/database"
)

func GetByID(id string) (*Profile, error) {
	var p Profile
	if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&Profile{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// IsAdmin vérifie si un utilisateur est admin à partir de son ID
func IsAdmin(userID string) (bool, error) {
	var p Profile
	if err := database.DB.Select("is_admin").Take(&p, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // profil introuvable, donc pas admin
		}
		return false, err
	}
	return p.IsAdmin, nil
}
