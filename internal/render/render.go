// Package render produit les fragments HTML que les pages injectent tels
// quels dans le DOM : cartes de post, états vides, bandeaux d'erreur,
// lignes du tableau utilisateurs admin.
package render

import (
	"html/template"
	"strings"
)

// PostCard regroupe tout ce qu'une carte affiche : champs auteur joints,
// état de like du lecteur, droit de suppression.
type PostCard struct {
	ID           string
	AuthorName   string
	AuthorHandle string
	AvatarURL    string
	TimeSince    string
	Content      string
	ImageURL     string
	LikeCount    int64
	IsLiked      bool
	CanDelete    bool
	DeleteAction string // "delete" sur le feed, "admin-delete" sur le dashboard
	ShowLikeBtn  bool
}

var cardTpl = template.Must(template.New("postCard").Parse(`<div class="post-card">
    <div class="post-header">
        <img src="{{.AvatarURL}}" alt="Avatar" class="avatar-medium">
        <div class="post-author-info">
            <div class="post-author-name">{{.AuthorName}}</div>
            <div class="post-username">@{{.AuthorHandle}}</div>
        </div>
        <div class="post-time">{{.TimeSince}}</div>
    </div>
    <div class="post-content">{{.Content}}</div>
    {{if .ImageURL}}<img src="{{.ImageURL}}" alt="Post image" class="post-image">{{end}}
    <div class="post-actions">
        {{if .ShowLikeBtn}}<button class="action-btn{{if .IsLiked}} liked{{end}}" data-post-id="{{.ID}}" data-action="like">{{if .IsLiked}}❤️{{else}}🤍{{end}} {{.LikeCount}}</button>{{else}}<button class="action-btn">🤍 {{.LikeCount}}</button>{{end}}
        {{if .CanDelete}}<button class="action-btn delete-btn" data-post-id="{{.ID}}" data-action="{{.DeleteAction}}">🗑️ Delete</button>{{end}}
    </div>
</div>`))

var emptyTpl = template.Must(template.New("emptyState").Parse(
	`<div class="empty-state"><h3>{{.Title}}</h3>{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}</div>`))

var userRowTpl = template.Must(template.New("userRow").Parse(`<tr>
    <td>@{{.Username}}</td>
    <td>{{.FullName}}</td>
    <td>{{.Email}}</td>
    <td>{{if .IsAdmin}}<span class="admin-badge">ADMIN</span>{{else}}-{{end}}</td>
    <td>{{.Joined}}</td>
</tr>`))

// Card rend une carte de post. Le contenu passe par html/template : un
// <script> dans le texte ressort échappé, jamais exécuté.
func Card(c PostCard) string {
	var b strings.Builder
	if err := cardTpl.Execute(&b, c); err != nil {
		return ""
	}
	return b.String()
}

// Feed concatène les cartes, ou rend l'état vide fourni s'il n'y a rien
func Feed(cards []PostCard, emptyTitle, emptySubtitle string) string {
	if len(cards) == 0 {
		return EmptyState(emptyTitle, emptySubtitle)
	}
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(Card(c))
	}
	return b.String()
}

func EmptyState(title, subtitle string) string {
	var b strings.Builder
	_ = emptyTpl.Execute(&b, struct{ Title, Subtitle string }{title, subtitle})
	return b.String()
}

// ErrorBanner rend le message d'erreur inline affiché à la place du contenu
func ErrorBanner(message string) string {
	return `<div class="error-message show">` + template.HTMLEscapeString(message) + `</div>`
}

type UserRow struct {
	Username string
	FullName string
	Email    string
	IsAdmin  bool
	Joined   string
}

// UserRows rend les lignes du tableau utilisateurs du dashboard admin
func UserRows(rows []UserRow) string {
	if len(rows) == 0 {
		return `<tr><td colspan="5" class="empty-state">No users found</td></tr>`
	}
	var b strings.Builder
	for _, r := range rows {
		_ = userRowTpl.Execute(&b, r)
	}
	return b.String()
}
