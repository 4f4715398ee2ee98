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

// PostHandler handles HTTP requests related to proof posts
type PostHandler struct {
	postRepository repositories.PostRepository
	goalRepository repositories.GoalRepository
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, goalRepo repositories.GoalRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		goalRepository: goalRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// EnrichedPost is a post with author info attached
type EnrichedPost struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

// CreatePost publishes proof for a nailed goal owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	goal, err := h.goalRepository.GetGoalByID(req.GoalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Goal not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if goal.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only post proof for your own goals")
	}
	if goal.Status != models.GoalStatusNailedIt {
		return echo.NewHTTPError(http.StatusConflict, "Proof can only be posted for a nailed goal")
	}

	post := &models.Post{
		UserID:      currentUserID,
		GoalID:      goal.ID,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a single post with its author
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := EnrichedPost{Post: *post}
	if author, err := h.userRepository.GetUserByID(post.UserID); err == nil {
		enriched.Author = author.ToCompact()
	}

	return c.JSON(http.StatusOK, enriched)
}

// GetUserPosts returns a user's posts, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postRepository.GetPostsByUser(uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}
