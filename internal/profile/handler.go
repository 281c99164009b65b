package profile

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/logs"
	"github.com/imincognito/socialhub/internal/realtime"
	"github.com/imincognito/socialhub/internal/storage"
)

// GetMe GET /api/me
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil non trouvé"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profileResponse(p)})
}

// UpdateMe PATCH /api/me
func UpdateMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	p, err := GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil non trouvé"})
		return
	}

	var input struct {
		FullName  *string `json:"full_name"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.FullName != nil && *input.FullName != "" {
		p.FullName = *input.FullName
	}
	if input.Bio != nil {
		p.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		// URL vide : retour au placeholder généré
		if *input.AvatarURL == "" {
			p.AvatarURL = PlaceholderAvatar(p.FullName)
		} else {
			p.AvatarURL = *input.AvatarURL
		}
	}

	if err := database.DB.Save(p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		logs.LogJSON("ERROR", "Profile update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	realtime.Publish("profiles", realtime.EventUpdate)

	c.JSON(http.StatusOK, gin.H{"message": "Profil mis à jour", "profile": profileResponse(p)})
}

// UploadAvatar POST /api/me/avatar
func UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil non trouvé"})
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier fourni"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	validExtensions := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true}
	if !validExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Extension fichier invalide"})
		return
	}

	filename := fmt.Sprintf("user_%s%s", userID, ext)
	contentType := header.Header.Get("Content-Type")

	// Supprimer l'ancienne image si elle vit dans notre bucket
	if strings.Contains(p.AvatarURL, ".amazonaws.com/") {
		oldKey := filepath.Base(p.AvatarURL)
		if err := storage.DeleteFromS3("avatars/" + oldKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression ancienne image", "details": err.Error()})
			return
		}
	}

	url, err := storage.UploadToS3(file, filename, contentType, "avatars")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload S3", "details": err.Error()})
		return
	}

	p.AvatarURL = url
	if err := database.DB.Save(p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	realtime.Publish("profiles", realtime.EventUpdate)

	c.JSON(http.StatusOK, gin.H{"message": "Avatar mis à jour", "profile": profileResponse(p)})
}

// Construction de la réponse avec condition sur isAdmin
func profileResponse(p *Profile) gin.H {
	response := gin.H{
		"id":         p.ID,
		"username":   p.Username,
		"full_name":  p.FullName,
		"bio":        p.Bio,
		"avatar_url": p.AvatarOrPlaceholder(),
		"created_at": p.CreatedAt,
	}
	if p.IsAdmin {
		response["is_admin"] = true
	}
	return response
}
