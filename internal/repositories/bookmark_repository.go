package repositories

import (
	"github.com/nailit-app/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations.
// CreateBookmark surfaces gorm.ErrDuplicatedKey on a repeated save.
type BookmarkRepository interface {
	CreateBookmark(bookmark *models.Bookmark) error
	DeleteBookmark(userID, postID uint) error
	IsBookmarked(userID, postID uint) (bool, error)
	GetBookmarkedPostIDs(userID uint, page, limit int) ([]uint, int64, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

func (r *PostgresBookmarkRepository) DeleteBookmark(userID, postID uint) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) IsBookmarked(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// GetBookmarkedPostIDs returns the user's bookmarked post ids ordered by
// post id descending, plus the total bookmark count for pagination.
func (r *PostgresBookmarkRepository) GetBookmarkedPostIDs(userID uint, page, limit int) ([]uint, int64, error) {
	var total int64
	if err := r.db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	offset := (page - 1) * limit
	err := r.db.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Order("post_id DESC").
		Offset(offset).Limit(limit).
		Pluck("post_id", &ids).Error
	return ids, total, err
}
