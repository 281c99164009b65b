package post

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/like"
	"github.com/imincognito/socialhub/internal/logs"
	"github.com/imincognito/socialhub/internal/realtime"
	"github.com/imincognito/socialhub/internal/render"
	"github.com/imincognito/socialhub/internal/storage"
)

// GetFeed GET /api/feed — posts du plus récent au plus ancien, auteur joint,
// état de like du lecteur, fragments HTML prêts à injecter.
// ?author=<id> restreint aux posts d'un utilisateur (page profil).
func GetFeed(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	authorID := c.Query("author")

	items, err := FetchFeed(authorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error loading posts",
			"html":  render.ErrorBanner("Error loading posts"),
		})
		logs.LogJSON("ERROR", "Error during feed retrieval", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	likedSet, err := like.LikedPostIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error loading posts",
			"html":  render.ErrorBanner("Error loading posts"),
		})
		logs.LogJSON("ERROR", "Error during liked set retrieval", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	emptyTitle, emptySubtitle := "No posts yet", "Be the first to share something!"
	if authorID != "" {
		emptySubtitle = "Share your first moment!"
	}

	cards := Cards(items, FeedCardOptions{ViewerID: userID, LikedSet: likedSet})
	c.JSON(http.StatusOK, gin.H{
		"posts": items,
		"html":  render.Feed(cards, emptyTitle, emptySubtitle),
	})
}

// CreatePost POST /api/posts — JSON {content, image_url} ou multipart avec
// fichier image envoyé sur S3.
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var content, imageURL string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		content = c.PostForm("content")

		file, header, err := c.Request.FormFile("image")
		if err == nil {
			defer file.Close()

			ext := strings.ToLower(filepath.Ext(header.Filename))
			validExtensions := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true}
			if !validExtensions[ext] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Extension de fichier invalide"})
				return
			}

			filename := fmt.Sprintf("post_%s%s", uuid.New().String(), ext)
			url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), "posts")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload", "details": err.Error()})
				return
			}
			imageURL = url
		}
	} else {
		var input struct {
			Content  string `json:"content"`
			ImageURL string `json:"image_url"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
			return
		}
		content = input.Content
		imageURL = input.ImageURL
	}

	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le contenu est obligatoire"})
		return
	}

	newPost := Post{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UserID:    userID,
		Content:   content,
		ImageURL:  imageURL,
	}

	if err := database.DB.Create(&newPost).Error; err != nil {
		// Si l'insertion échoue, on tente de supprimer le fichier déjà uploadé
		if parts := strings.Split(imageURL, ".amazonaws.com/"); len(parts) > 1 {
			_ = storage.DeleteFromS3(parts[1])
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du post"})
		logs.LogJSON("ERROR", "Error during post creation", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	realtime.Publish("posts", realtime.EventInsert)

	c.JSON(http.StatusCreated, gin.H{"message": "Post créé avec succès", "post": newPost})
}

// DeletePost DELETE /api/posts/:id — réservé au propriétaire du post
func DeletePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var post Post
	if err := database.DB.First(&post, "id = ? AND user_id = ?", postID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé ou vous n'êtes pas autorisé à le supprimer"})
		return
	}

	Remove(c, &post)
}

// Remove supprime un post (image S3 comprise) et annonce le changement.
// Le contrôle d'accès appartient à l'appelant.
func Remove(c *gin.Context, post *Post) {
	if parts := strings.Split(post.ImageURL, ".amazonaws.com/"); len(parts) > 1 {
		if err := storage.DeleteFromS3(parts[1]); err != nil {
			// On continue malgré tout pour supprimer l'entrée en base
			logs.LogJSON("WARN", "S3 media deletion failed", map[string]interface{}{
				"error":  err.Error(),
				"postID": post.ID,
			})
		}
	}

	if err := database.DB.Delete(post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du post"})
		return
	}

	realtime.Publish("posts", realtime.EventDelete)

	c.JSON(http.StatusOK, gin.H{"message": "Post supprimé avec succès"})
}
