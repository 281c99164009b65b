package admin

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/logs"
	"github.com/imincognito/socialhub/internal/post"
	"github.com/imincognito/socialhub/internal/profile"
	"github.com/imincognito/socialhub/internal/render"
)

// GetDashboardStats GET /api/admin/stats — compteurs indépendants par table,
// zéro par défaut, aucune jointure.
func GetDashboardStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var totalUsers, totalPosts, totalLikes, totalComments int64

	database.DB.Table("profiles").Count(&totalUsers)
	database.DB.Table("posts").Count(&totalPosts)
	database.DB.Table("likes").Count(&totalLikes)
	database.DB.Table("comments").Count(&totalComments)

	c.JSON(http.StatusOK, gin.H{"stats": gin.H{
		"total_users":    totalUsers,
		"total_posts":    totalPosts,
		"total_likes":    totalLikes,
		"total_comments": totalComments,
	}})

	logs.LogJSON("INFO", "Admin stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// GetUsers GET /api/admin/users — tous les profils, joints en mémoire avec le
// listing Supabase Auth pour résoudre les emails. Sans correspondance : "N/A".
func GetUsers(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var profiles []profile.Profile
	if err := database.DB.Order("created_at DESC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error loading users",
			"html":  `<tr><td colspan="5" class="error-message show">Error loading users</td></tr>`,
		})
		logs.LogJSON("ERROR", "Error during profiles retrieval", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	emailMap, err := listAuthEmails()
	if err != nil {
		// Les emails sont un enrichissement : on continue avec "N/A"
		logs.LogJSON("WARN", "Error loading auth users", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
	}

	users := make([]gin.H, 0, len(profiles))
	rows := make([]render.UserRow, 0, len(profiles))
	for _, p := range profiles {
		email, ok := emailMap[p.ID]
		if !ok {
			email = "N/A"
		}
		users = append(users, gin.H{
			"id":         p.ID,
			"username":   p.Username,
			"full_name":  p.FullName,
			"email":      email,
			"is_admin":   p.IsAdmin,
			"created_at": p.CreatedAt,
		})
		rows = append(rows, render.UserRow{
			Username: p.Username,
			FullName: p.FullName,
			Email:    email,
			IsAdmin:  p.IsAdmin,
			Joined:   p.CreatedAt.Format("1/2/2006"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"html":  render.UserRows(rows),
	})
}

// GetAllPosts GET /api/admin/posts — même rendu que le feed, suppression
// toujours proposée, pas d'état de like du lecteur.
func GetAllPosts(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	items, err := post.FetchFeed("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error loading posts",
			"html":  render.ErrorBanner("Error loading posts"),
		})
		logs.LogJSON("ERROR", "Error during admin feed retrieval", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	cards := post.Cards(items, post.FeedCardOptions{AdminView: true})
	c.JSON(http.StatusOK, gin.H{
		"posts": items,
		"html":  render.Feed(cards, "No posts yet", ""),
	})
}

// DeletePost DELETE /api/admin/posts/:id — suppression sans condition de
// propriété, la route est déjà derrière le garde admin.
func DeletePost(c *gin.Context) {
	postID := c.Param("id")

	var p post.Post
	if err := database.DB.First(&p, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	post.Remove(c, &p)
}

// listAuthEmails appelle le listing admin de Supabase Auth (clé service role)
func listAuthEmails() (map[string]string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseServiceKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")

	var result struct {
		Users []struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"users"`
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("apikey", supabaseServiceKey).
		SetHeader("Authorization", "Bearer "+supabaseServiceKey).
		SetResult(&result).
		Get(supabaseURL + "/auth/v1/admin/users")

	if err != nil {
		return map[string]string{}, err
	}
	if resp.IsError() {
		return map[string]string{}, fmt.Errorf("listing auth users: %s", resp.Status())
	}

	emailMap := make(map[string]string, len(result.Users))
	for _, u := range result.Users {
		emailMap[u.ID] = u.Email
	}
	return emailMap, nil
}
