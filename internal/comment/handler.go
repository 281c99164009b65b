package comment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/realtime"
)

// GetByPostID GET /api/posts/:id/comments
func GetByPostID(c *gin.Context) {
	postID := c.Param("id")

	var postCount int64
	if err := database.DB.Table("posts").Where("id = ?", postID).Count(&postCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if postCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	var comments []Comment
	if err := database.DB.Table("comments").
		Select("comments.*, profiles.username").
		Joins("LEFT JOIN profiles ON profiles.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Scan(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des commentaires"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create POST /api/posts/:id/comments
func Create(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var postCount int64
	if err := database.DB.Table("posts").Where("id = ?", postID).Count(&postCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if postCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	comment := Comment{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		PostID:    postID,
		UserID:    userID,
		Content:   input.Text,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du commentaire"})
		return
	}

	realtime.Publish("comments", realtime.EventInsert)

	c.JSON(http.StatusCreated, gin.H{"message": "Commentaire ajouté avec succès", "comment": comment})
}

// Delete DELETE /api/comments/:id — réservé à l'auteur du commentaire
func Delete(c *gin.Context) {
	commentID := c.Param("id")
	userID := c.GetString("user_id")

	var comment Comment
	if err := database.DB.First(&comment, "id = ? AND user_id = ?", commentID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commentaire non trouvé ou vous n'êtes pas autorisé à le supprimer"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du commentaire"})
		return
	}

	realtime.Publish("comments", realtime.EventDelete)

	c.JSON(http.StatusOK, gin.H{"message": "Commentaire supprimé avec succès"})
}
