package repositories

import (
	"github.com/nailit-app/backend/internal/models"
	"gorm.io/gorm"
)

// GoalRepository defines the interface for goal data operations
type GoalRepository interface {
	CreateGoal(goal *models.Goal) error
	GetGoalByID(id uint) (*models.Goal, error)
	GetGoalsByUser(userID uint) ([]models.Goal, error)
	UpdateStatus(goalID uint, status models.GoalStatus) error
}

// PostgresGoalRepository implements GoalRepository for PostgreSQL
type PostgresGoalRepository struct {
	db *gorm.DB
}

// NewPostgresGoalRepository creates a new PostgresGoalRepository
func NewPostgresGoalRepository(db *gorm.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) CreateGoal(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

func (r *PostgresGoalRepository) GetGoalByID(id uint) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) GetGoalsByUser(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *PostgresGoalRepository) UpdateStatus(goalID uint, status models.GoalStatus) error {
	return r.db.Model(&models.Goal{}).Where("id = ?", goalID).Update("status", status).Error
}
