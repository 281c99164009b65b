package like

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/logs"
	"github.com/imincognito/socialhub/internal/realtime"
)

// ToggleLike POST /api/posts/:id/like — supprime le like s'il existe, le crée
// sinon. La réponse est toujours l'état relu en base, jamais un calcul local.
func ToggleLike(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	// Vérifier que le post existe
	var postCount int64
	if err := database.DB.Table("posts").Where("id = ?", postID).Count(&postCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}
	if postCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	var existingLike Like
	err := database.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&existingLike).Error

	if err == nil {
		// Le like existe, on le supprime (unlike)
		if err := database.DB.Delete(&existingLike).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du like"})
			logs.LogJSON("ERROR", "Error when unliking", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
				"postID": postID,
			})
			return
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		newLike := Like{
			ID:        uuid.New().String(),
			CreatedAt: time.Now(),
			UserID:    userID,
			PostID:    postID,
		}

		if err := database.DB.Create(&newLike).Error; err != nil {
			// Double soumission : la contrainte unique (post_id, user_id) a pu
			// rejeter un insert concurrent. Si la ligne existe désormais, l'état
			// voulu est atteint, on répond avec le statut courant.
			var count int64
			database.DB.Model(&Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count)
			if count == 0 {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'ajout du like"})
				logs.LogJSON("ERROR", "Error when liking", map[string]interface{}{
					"error":  err.Error(),
					"route":  route,
					"userID": userID,
					"postID": postID,
				})
				return
			}
		}
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	realtime.Publish("likes", realtime.EventUpdate)
	// Le trigger qui maintient likes_count modifie la ligne posts sans
	// notification : on relaie l'évènement pour les abonnés du feed
	realtime.Publish("posts", realtime.EventUpdate)

	response := getLikeStatus(postID, userID)
	c.JSON(http.StatusOK, response)
}

// GetLikeStatus GET /api/posts/:id/likes
func GetLikeStatus(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id") // Peut être vide si non connecté

	var postCount int64
	if err := database.DB.Table("posts").Where("id = ?", postID).Count(&postCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if postCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	c.JSON(http.StatusOK, getLikeStatus(postID, userID))
}

// LikedPostIDs retourne l'ensemble des posts likés par un utilisateur
func LikedPostIDs(userID string) (map[string]bool, error) {
	if userID == "" {
		return map[string]bool{}, nil
	}

	var postIDs []string
	if err := database.DB.Model(&Like{}).Where("user_id = ?", userID).Pluck("post_id", &postIDs).Error; err != nil {
		return nil, err
	}

	liked := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		liked[id] = true
	}
	return liked, nil
}

// Fonction utilitaire pour obtenir le statut des likes
func getLikeStatus(postID, userID string) LikeResponse {
	var likeCount int64
	database.DB.Model(&Like{}).Where("post_id = ?", postID).Count(&likeCount)

	var isLiked bool
	if userID != "" {
		var existingLike Like
		err := database.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&existingLike).Error
		isLiked = err == nil
	}

	return LikeResponse{
		PostID:    postID,
		LikeCount: likeCount,
		IsLiked:   isLiked,
	}
}
