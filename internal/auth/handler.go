package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/logs"
	"github.com/imincognito/socialhub/internal/profile"
	"github.com/imincognito/socialhub/internal/realtime"
	"github.com/imincognito/socialhub/internal/utils"
)

// Signup POST /api/signup : Inscription
func Signup(c *gin.Context) {
	supabaseBaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Username  string `json:"username"`
		FullName  string `json:"full_name"`
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.Email == "" || input.Password == "" || input.Username == "" || input.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}

	// Vérification proactive : aucun compte n'est créé si le username est pris
	if profile.ExistsByUsername(input.Username) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken. Please choose another one."})
		return
	}

	// Étape 1 – Appel à Supabase Auth
	authPayload := map[string]string{
		"email":    input.Email,
		"password": input.Password,
	}
	jsonBody, _ := json.Marshal(authPayload)
	req, _ := http.NewRequest("POST", supabaseBaseURL+"/auth/v1/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("apikey", supabaseAnonKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur Supabase Auth"})
		return
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		c.JSON(resp.StatusCode, gin.H{"error": "Erreur Auth", "details": string(respBytes)})
		return
	}

	// Étape 2 – Extraire le user.id
	var authResp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(respBytes, &authResp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur parsing user.id"})
		return
	}

	userID := authResp.User.ID
	if userID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aucun ID utilisateur renvoyé par Supabase"})
		return
	}

	// Étape 3 – Créer le profil applicatif
	avatarURL := input.AvatarURL
	if avatarURL == "" {
		avatarURL = profile.PlaceholderAvatar(input.FullName)
	}

	newProfile := profile.Profile{
		ID:        userID,
		CreatedAt: time.Now(),
		Username:  input.Username,
		FullName:  input.FullName,
		Bio:       input.Bio,
		AvatarURL: avatarURL,
	}

	if err := database.DB.Create(&newProfile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur insertion profil"})
		logs.LogJSON("ERROR", "Profile insertion failed after signup", map[string]interface{}{
			"error":  err.Error(),
			"userID": userID,
		})
		return
	}

	realtime.Publish("profiles", realtime.EventInsert)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur inscrit",
		"profile": newProfile,
	})
}

// Login POST /api/login — passthrough du grant password Supabase
func Login(c *gin.Context) {
	status, respBody, err := passwordGrant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion Supabase"})
		return
	}
	c.Data(status, "application/json", respBody)
}

// AdminLogin POST /api/admin/login — login puis vérification du flag admin.
// Un non-admin voit sa session toute fraîche révoquée avant le refus.
func AdminLogin(c *gin.Context) {
	status, respBody, err := passwordGrant(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion Supabase"})
		return
	}
	if status >= 400 {
		c.Data(status, "application/json", respBody)
		return
	}

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &tokens); err != nil || tokens.AccessToken == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur parsing session"})
		return
	}

	userID := utils.SubjectFromToken(tokens.AccessToken)

	isAdmin, err := profile.IsAdmin(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification admin"})
		return
	}
	if !isAdmin {
		signOut(tokens.AccessToken)
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
		logs.LogJSON("WARN", "Non-admin login attempt on admin page", map[string]interface{}{
			"userID": userID,
		})
		return
	}

	c.Data(status, "application/json", respBody)
}

// Logout POST /api/logout — révoque la session du porteur du token
func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token requis"})
		return
	}

	signOut(token)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// GetSession GET /api/session — identité de la session courante, pour le
// garde d'entrée de chaque page protégée.
func GetSession(c *gin.Context) {
	userID := c.GetString("user_id")

	p, err := profile.GetByID(userID)
	if err != nil {
		// Session valide mais profil absent : on renvoie l'identité seule
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
		return
	}

	response := gin.H{
		"user_id":    userID,
		"username":   p.Username,
		"full_name":  p.FullName,
		"bio":        p.Bio,
		"avatar_url": p.AvatarOrPlaceholder(),
	}
	if p.IsAdmin {
		response["is_admin"] = true
	}
	c.JSON(http.StatusOK, response)
}

// passwordGrant relaie email/password vers le grant password de Supabase
func passwordGrant(c *gin.Context) (int, []byte, error) {
	supabaseBaseURL := os.Getenv("SUPABASE_URL")

	var body map[string]string
	if err := c.BindJSON(&body); err != nil {
		return http.StatusBadRequest, []byte(`{"error":"Requête invalide"}`), nil
	}

	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(
		"POST",
		supabaseBaseURL+"/auth/v1/token?grant_type=password",
		bytes.NewBuffer(jsonBody),
	)
	req.Header.Set("apikey", os.Getenv("SUPABASE_ANON_KEY"))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, nil
}
