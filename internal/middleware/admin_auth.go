package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"

	"github.com/imincognito/socialhub/internal/logs"
	"github.com/imincognito/socialhub/internal/profile"
)

// AdminOnlyMiddleware permet de protéger certaines routes aux admins uniquement.
// Un utilisateur authentifié mais non admin est déconnecté (session révoquée
// côté Supabase) avant le 403 : pas d'état semi-authentifié sur la page admin.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		userID := c.GetString("user_id")

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié", "redirect": "/admin-login.html"})
			logs.LogJSON("WARN", "Non-authenticated user tried admin route", map[string]interface{}{
				"route": route,
			})
			return
		}

		isAdmin, err := profile.IsAdmin(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification admin"})
			logs.LogJSON("ERROR", "Erreur DB admin check", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}

		if !isAdmin {
			revokeSession(c.GetString("access_token"))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Access denied. Admin privileges required.",
				"redirect": "/admin-login.html",
			})
			logs.LogJSON("WARN", "Non-admin user blocked from admin route", map[string]interface{}{
				"route":  route,
				"userID": userID,
			})
			return
		}

		c.Next()
	}
}

// revokeSession invalide la session Supabase associée au token
func revokeSession(accessToken string) {
	if accessToken == "" {
		return
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	client := resty.New()
	resp, err := client.R().
		SetHeader("apikey", supabaseAnonKey).
		SetHeader("Authorization", "Bearer "+accessToken).
		Post(supabaseURL + "/auth/v1/logout")

	if err != nil {
		logs.LogJSON("WARN", "Session revocation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if resp.IsError() {
		logs.LogJSON("WARN", "Session revocation failed", map[string]interface{}{
			"status": resp.StatusCode(),
		})
	}
}
