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

// GoalHandler handles HTTP requests related to goals
type GoalHandler struct {
	goalRepository repositories.GoalRepository
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalRepo repositories.GoalRepository) *GoalHandler {
	return &GoalHandler{goalRepository: goalRepo}
}

// RegisterGoalRoutes registers goal-related routes
func (h *GoalHandler) RegisterGoalRoutes(g *echo.Group) {
	g.POST("/goals", h.CreateGoal)
	g.GET("/goals", h.GetGoals)
	g.PATCH("/goals/:id/status", h.UpdateGoalStatus)
}

// CreateGoal creates a pending goal for the authenticated user
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	goal := &models.Goal{
		UserID:   currentUserID,
		Title:    req.Title,
		Duration: req.Duration,
		Status:   models.GoalStatusPending,
	}

	if err := h.goalRepository.CreateGoal(goal); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, goal)
}

// GetGoals returns the authenticated user's goals, newest first
func (h *GoalHandler) GetGoals(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	goals, err := h.goalRepository.GetGoalsByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"goals": goals}})
}

// UpdateGoalStatus resolves a pending goal to "nail it" or "failed out".
// Terminal goals cannot transition again.
func (h *GoalHandler) UpdateGoalStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid goal ID")
	}

	var req models.UpdateGoalStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	goal, err := h.goalRepository.GetGoalByID(uint(goalID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Goal not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if goal.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own goals")
	}
	if goal.Status != models.GoalStatusPending {
		return echo.NewHTTPError(http.StatusConflict, "Goal is already resolved")
	}

	if err := h.goalRepository.UpdateStatus(goal.ID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	goal.Status = req.Status
	return c.JSON(http.StatusOK, goal)
}
