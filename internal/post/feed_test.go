package post

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/profile"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db

	return mock, func() {
		database.DB = originalDB
		mockDB.Close()
	}
}

func feedColumns() []string {
	return []string{"id", "created_at", "user_id", "content", "image_url", "likes_count", "username", "full_name", "avatar_url"}
}

func TestFetchFeedOrder(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	now := time.Now()
	rows := sqlmock.NewRows(feedColumns()).
		AddRow("post-2", now, "user-1", "Newest", "", int64(0), "jane", "Jane Doe", "").
		AddRow("post-1", now.Add(-time.Hour), "user-1", "Older", "", int64(2), "jane", "Jane Doe", "")

	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

	items, err := FetchFeed("")
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	// L'ordre renvoyé par la base (plus récent d'abord) est conservé tel quel
	assert.Equal(t, "post-2", items[0].ID)
	assert.Equal(t, "post-1", items[1].ID)
	assert.True(t, !items[0].CreatedAt.Before(items[1].CreatedAt))
}

func TestFetchFeedEmpty(t *testing.T) {
	mock, teardown := setupMockDB(t)
	defer teardown()

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(feedColumns()))

	items, err := FetchFeed("user-42")
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	// Le champ posts de la réponse doit rester un tableau JSON, jamais null
	payload, err := json.Marshal(items)
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(payload))
}

func TestCardsOwnerDelete(t *testing.T) {
	items := []FeedItem{
		{ID: "post-1", UserID: "viewer", Content: "mine", Username: "me", FullName: "Me"},
		{ID: "post-2", UserID: "someone-else", Content: "theirs", Username: "them", FullName: "Them"},
	}

	cards := Cards(items, FeedCardOptions{ViewerID: "viewer", LikedSet: map[string]bool{}})

	assert.True(t, cards[0].CanDelete)
	assert.False(t, cards[1].CanDelete)
	assert.Equal(t, "delete", cards[0].DeleteAction)
}

func TestCardsAdminView(t *testing.T) {
	items := []FeedItem{
		{ID: "post-1", UserID: "someone-else", Username: "them", FullName: "Them"},
	}

	cards := Cards(items, FeedCardOptions{AdminView: true})

	// Sur le dashboard : suppression toujours offerte, pas d'état de like lecteur
	assert.True(t, cards[0].CanDelete)
	assert.Equal(t, "admin-delete", cards[0].DeleteAction)
	assert.False(t, cards[0].ShowLikeBtn)
	assert.False(t, cards[0].IsLiked)
}

func TestCardsLikeState(t *testing.T) {
	items := []FeedItem{
		{ID: "post-1", UserID: "a", Username: "a", FullName: "A", LikesCount: 3},
		{ID: "post-2", UserID: "b", Username: "b", FullName: "B"},
	}

	cards := Cards(items, FeedCardOptions{
		ViewerID: "viewer",
		LikedSet: map[string]bool{"post-1": true},
	})

	assert.True(t, cards[0].IsLiked)
	assert.Equal(t, int64(3), cards[0].LikeCount)
	assert.False(t, cards[1].IsLiked)
}

func TestCardsAvatarFallback(t *testing.T) {
	items := []FeedItem{
		{ID: "post-1", UserID: "a", Username: "jane", FullName: "Jane Doe", AvatarURL: ""},
		{ID: "post-2", UserID: "b", Username: "bob", FullName: "Bob", AvatarURL: "https://example.com/bob.png"},
	}

	cards := Cards(items, FeedCardOptions{ViewerID: "viewer", LikedSet: map[string]bool{}})

	assert.Equal(t, profile.PlaceholderAvatar("Jane Doe"), cards[0].AvatarURL)
	assert.Equal(t, "https://example.com/bob.png", cards[1].AvatarURL)
}
