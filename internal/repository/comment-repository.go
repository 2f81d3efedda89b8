package repository

import (
	"errors"

	"github.com/SundayYogurt/task_service/internal/domain"
	"gorm.io/gorm"
)

type CommentRepository interface {
	CreateComment(comment *domain.Comment) (*domain.Comment, error)
	FindCommentById(commentID uint) (*domain.Comment, error)
	DeleteComment(comment *domain.Comment) error
	ListCommentsByTask(taskID uint, limit, offset int) ([]domain.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(comment *domain.Comment) (*domain.Comment, error) {
	if comment == nil {
		return nil, errors.New("nil comment")
	}
	if err := r.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) FindCommentById(commentID uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) DeleteComment(comment *domain.Comment) error {
	if comment == nil {
		return errors.New("nil comment")
	}
	return r.db.Delete(comment).Error
}

func (r *commentRepository) ListCommentsByTask(taskID uint, limit, offset int) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.Where("task_id = ?", taskID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
