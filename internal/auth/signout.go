package auth

import (
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/imincognito/socialhub/internal/logs"
)

// signOut révoque une session côté Supabase
func signOut(accessToken string) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	client := resty.New()
	resp, err := client.R().
		SetHeader("apikey", supabaseAnonKey).
		SetHeader("Authorization", "Bearer "+accessToken).
		Post(supabaseURL + "/auth/v1/logout")

	if err != nil {
		logs.LogJSON("WARN", "Sign out failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if resp.IsError() {
		logs.LogJSON("WARN", "Sign out failed", map[string]interface{}{
			"status": resp.StatusCode(),
		})
	}
}
