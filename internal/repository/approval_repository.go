package repository

import (
	"errors"

	"unicourse_backend/internal/model"

	"gorm.io/gorm"
)

type ApprovalRepository struct {
	DB *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{DB: db}
}

func (r *ApprovalRepository) FindByID(id string) (*model.ApprovalRecord, error) {
	var record model.ApprovalRecord
	err := r.DB.First(&record, "id = ?", id).Error
	return &record, err
}

// FindActiveByCourse returns the single live record awaiting a decision for
// the course, or nil when no review is in flight.
func (r *ApprovalRepository) FindActiveByCourse(courseID uint) (*model.ApprovalRecord, error) {
	var record model.ApprovalRecord
	err := r.DB.Where("course_id = ? AND is_active = ?", courseID, true).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ApprovalRepository) FindByCourseAndLevel(courseID uint, level int) (*model.ApprovalRecord, error) {
	var record model.ApprovalRecord
	err := r.DB.Where("course_id = ? AND level = ?", courseID, level).First(&record).Error
	return &record, err
}

func (r *ApprovalRepository) ListPendingByReviewer(reviewerID uint, page, limit int) ([]model.ApprovalRecord, int64, error) {
	var records []model.ApprovalRecord
	var total int64
	query := r.DB.Model(&model.ApprovalRecord{}).
		Where("reviewer_id = ? AND status = ? AND is_active = ?", reviewerID, model.ApprovalPending, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("submitted_at asc").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

func (r *ApprovalRepository) CountPendingByReviewer(reviewerID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ApprovalRecord{}).
		Where("reviewer_id = ? AND status = ? AND is_active = ?", reviewerID, model.ApprovalPending, true).
		Count(&count).Error
	return count, err
}

func (r *ApprovalRepository) ListByCourse(courseID uint) ([]model.ApprovalRecord, error) {
	var records []model.ApprovalRecord
	err := r.DB.Where("course_id = ?", courseID).Order("level asc").Find(&records).Error
	return records, err
}
