package post

import (
	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/profile"
	"github.com/imincognito/socialhub/internal/render"
)

// FetchFeed retourne les posts du plus récent au plus ancien, avec les
// champs d'affichage de l'auteur. authorID vide = feed global.
func FetchFeed(authorID string) ([]FeedItem, error) {
	query := database.DB.Table("posts").
		Select("posts.id, posts.created_at, posts.user_id, posts.content, posts.image_url, posts.likes_count, profiles.username, profiles.full_name, profiles.avatar_url").
		Joins("LEFT JOIN profiles ON profiles.id = posts.user_id").
		Order("posts.created_at DESC")

	if authorID != "" {
		query = query.Where("posts.user_id = ?", authorID)
	}

	// Slice initialisée pour qu'un feed vide sérialise en [] et pas null
	items := make([]FeedItem, 0)
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FeedCardOptions pilote les variations d'affichage entre feed et dashboard
type FeedCardOptions struct {
	ViewerID  string
	LikedSet  map[string]bool
	AdminView bool // delete toujours visible, pas d'état de like lecteur
}

// Cards convertit les lignes du feed en cartes prêtes à rendre
func Cards(items []FeedItem, opts FeedCardOptions) []render.PostCard {
	cards := make([]render.PostCard, 0, len(items))
	for _, it := range items {
		avatar := it.AvatarURL
		if avatar == "" {
			avatar = profile.PlaceholderAvatar(it.FullName)
		}

		card := render.PostCard{
			ID:           it.ID,
			AuthorName:   it.FullName,
			AuthorHandle: it.Username,
			AvatarURL:    avatar,
			TimeSince:    render.TimeSince(it.CreatedAt),
			Content:      it.Content,
			ImageURL:     it.ImageURL,
			LikeCount:    it.LikesCount,
		}

		if opts.AdminView {
			card.CanDelete = true
			card.DeleteAction = "admin-delete"
		} else {
			card.ShowLikeBtn = true
			card.IsLiked = opts.LikedSet[it.ID]
			card.CanDelete = it.UserID == opts.ViewerID
			card.DeleteAction = "delete"
		}

		cards = append(cards, card)
	}
	return cards
}
