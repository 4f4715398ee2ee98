package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nailit-app/backend/internal/models"
	"github.com/nailit-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
	goalRepository     repositories.GoalRepository
	likeRepository     repositories.LikeRepository
	commentRepository  repositories.CommentRepository
	userRepository     repositories.UserRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(
	bookmarkRepo repositories.BookmarkRepository,
	postRepo repositories.PostRepository,
	goalRepo repositories.GoalRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
		goalRepository:     goalRepo,
		likeRepository:     likeRepo,
		commentRepository:  commentRepo,
		userRepository:     userRepo,
	}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/posts/:id/bookmark", h.BookmarkPost)
	g.DELETE("/posts/:id/bookmark", h.UnbookmarkPost)
	g.GET("/bookmarks/detailed", h.GetDetailedBookmarks)
}

// BookmarkPost saves a post for the caller. A repeated save is a 409,
// detected by the store's unique index.
func (h *BookmarkHandler) BookmarkPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(uint(postID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	bookmark := &models.Bookmark{
		UserID: currentUserID,
		PostID: uint(postID),
	}

	if err := h.bookmarkRepository.CreateBookmark(bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Post already bookmarked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bookmarked": true}})
}

// UnbookmarkPost removes a post from the caller's bookmarks
func (h *BookmarkHandler) UnbookmarkPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.bookmarkRepository.DeleteBookmark(currentUserID, uint(postID)); err != nil {
		if errors.Is(err, repositories.ErrBookmarkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"bookmarked": false}})
}

// DetailedBookmark is the denormalized payload for one bookmarked post
type DetailedBookmark struct {
	models.Post
	Goal         *models.Goal       `json:"goal,omitempty"`
	Author       models.UserCompact `json:"author"`
	LikeCount    int64              `json:"like_count"`
	LikedByMe    bool               `json:"liked_by_me"`
	BookmarkedBy bool               `json:"bookmarked_by_me"`
	Comments     []EnrichedComment  `json:"comments"`
}

// GetDetailedBookmarks returns the caller's bookmarked posts ordered by
// post id descending, each with goal, author, like count, per-caller
// flags and the full nested comment list.
func (h *BookmarkHandler) GetDetailedBookmarks(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c)

	postIDs, total, err := h.bookmarkRepository.GetBookmarkedPostIDs(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts, err := h.postRepository.GetPostsByIDs(postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likedMap, err := h.likeRepository.GetLikedPostIDs(currentUserID, postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	commentsByPost, err := h.commentRepository.GetCommentsForPosts(postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userCache := make(map[uint]models.UserCompact)
	lookupUser := func(id uint) models.UserCompact {
		if u, ok := userCache[id]; ok {
			return u
		}
		user, err := h.userRepository.GetUserByID(id)
		if err != nil {
			return models.UserCompact{ID: id}
		}
		compact := user.ToCompact()
		userCache[id] = compact
		return compact
	}

	detailed := make([]DetailedBookmark, len(posts))
	for i, p := range posts {
		likeCount, err := h.likeRepository.GetLikesCountByPostID(p.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		comments := commentsByPost[p.ID]
		enrichedComments := make([]EnrichedComment, len(comments))
		for j, cm := range comments {
			enrichedComments[j] = EnrichedComment{Comment: cm, Author: lookupUser(cm.UserID)}
		}

		d := DetailedBookmark{
			Post:         p,
			Author:       lookupUser(p.UserID),
			LikeCount:    likeCount,
			LikedByMe:    likedMap[p.ID],
			BookmarkedBy: true,
			Comments:     enrichedComments,
		}
		if goal, err := h.goalRepository.GetGoalByID(p.GoalID); err == nil {
			d.Goal = goal
		}
		detailed[i] = d
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"bookmarks": detailed},
		"meta":    paginationMeta(page, limit, total),
	})
}
