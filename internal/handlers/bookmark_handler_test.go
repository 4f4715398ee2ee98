package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/nailit-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookmarkFixture() (*BookmarkHandler, *fakeBookmarkRepo, *fakePostRepo, *fakeGoalRepo, *fakeLikeRepo, *fakeCommentRepo, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	goalRepo := newFakeGoalRepo()
	postRepo := newFakePostRepo()
	likeRepo := newFakeLikeRepo()
	commentRepo := newFakeCommentRepo()
	bookmarkRepo := newFakeBookmarkRepo()
	h := NewBookmarkHandler(bookmarkRepo, postRepo, goalRepo, likeRepo, commentRepo, userRepo)
	return h, bookmarkRepo, postRepo, goalRepo, likeRepo, commentRepo, userRepo
}

func TestBookmarkPost(t *testing.T) {
	h, bookmarkRepo, postRepo, _, _, _, userRepo := newBookmarkFixture()
	userRepo.addUser("alice", "alice@example.com")
	postRepo.addPost(1, 1)

	c, rec := newTestContext(http.MethodPost, "/posts/1/bookmark", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.BookmarkPost(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	saved, _ := bookmarkRepo.IsBookmarked(1, 1)
	assert.True(t, saved)

	// duplicate bookmark is a distinguishable conflict, not a server error
	c, rec = newTestContext(http.MethodPost, "/posts/1/bookmark", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.BookmarkPost(c)
	assert.Equal(t, http.StatusConflict, httpStatus(err, rec))
}

func TestUnbookmarkPost(t *testing.T) {
	h, bookmarkRepo, postRepo, _, _, _, userRepo := newBookmarkFixture()
	userRepo.addUser("alice", "alice@example.com")
	postRepo.addPost(1, 1)
	require.NoError(t, bookmarkRepo.CreateBookmark(&models.Bookmark{UserID: 1, PostID: 1}))

	c, rec := newTestContext(http.MethodDelete, "/posts/1/bookmark", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UnbookmarkPost(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodDelete, "/posts/1/bookmark", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.UnbookmarkPost(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(err, rec))
}

func TestGetDetailedBookmarks(t *testing.T) {
	h, bookmarkRepo, postRepo, goalRepo, likeRepo, commentRepo, userRepo := newBookmarkFixture()

	alice := userRepo.addUser("alice", "alice@example.com")
	bob := userRepo.addUser("bob", "bob@example.com")
	carol := userRepo.addUser("carol", "carol@example.com")

	goal := &models.Goal{UserID: alice.ID, Title: "Run 5k", Duration: 30, Status: models.GoalStatusNailedIt}
	require.NoError(t, goalRepo.CreateGoal(goal))

	p1 := postRepo.addPost(alice.ID, goal.ID)
	p2 := postRepo.addPost(alice.ID, goal.ID)

	// bob bookmarks both posts, likes only the first
	require.NoError(t, bookmarkRepo.CreateBookmark(&models.Bookmark{UserID: bob.ID, PostID: p1.ID}))
	require.NoError(t, bookmarkRepo.CreateBookmark(&models.Bookmark{UserID: bob.ID, PostID: p2.ID}))
	require.NoError(t, likeRepo.CreateLike(&models.Like{PostID: p1.ID, UserID: bob.ID}))
	// carol's like must count but never leak into bob's liked_by_me flag
	require.NoError(t, likeRepo.CreateLike(&models.Like{PostID: p1.ID, UserID: carol.ID}))

	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: p1.ID, UserID: carol.ID, Content: "Nice!"}))

	c, rec := newTestContext(http.MethodGet, "/bookmarks/detailed", "", bob.ID)
	require.NoError(t, h.GetDetailedBookmarks(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Bookmarks []DetailedBookmark `json:"bookmarks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	bookmarks := resp.Data.Bookmarks
	require.Len(t, bookmarks, 2)

	// ordered by post id descending
	assert.Equal(t, p2.ID, bookmarks[0].ID)
	assert.Equal(t, p1.ID, bookmarks[1].ID)

	first := bookmarks[1] // p1
	assert.Equal(t, "alice", first.Author.Username)
	assert.Equal(t, int64(2), first.LikeCount)
	assert.True(t, first.LikedByMe)
	assert.True(t, first.BookmarkedBy)
	require.NotNil(t, first.Goal)
	assert.Equal(t, "Run 5k", first.Goal.Title)
	require.Len(t, first.Comments, 1)
	assert.Equal(t, "Nice!", first.Comments[0].Content)
	assert.Equal(t, "carol", first.Comments[0].Author.Username)

	second := bookmarks[0] // p2
	assert.Equal(t, int64(0), second.LikeCount)
	assert.False(t, second.LikedByMe)
	assert.Empty(t, second.Comments)
}
