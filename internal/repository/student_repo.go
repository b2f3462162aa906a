package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-reportcard/internal/models"
)

// ErrDuplicateRollNumber indicates a record with the same roll number is already stored.
var ErrDuplicateRollNumber = errors.New("roll number already exists")

// StoreError wraps any persistence failure other than a duplicate roll number.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// StudentRecordRepository provides append-only access to saved report cards.
type StudentRecordRepository interface {
	Create(ctx context.Context, record *models.StudentRecord) error
	List(ctx context.Context) ([]models.StudentRecord, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (models.StudentRecord, error)
	Count(ctx context.Context) (int64, error)
}

type studentRecordRepository struct {
	db *gorm.DB
}

// NewStudentRecordRepository constructs a student record repository.
func NewStudentRecordRepository(db *gorm.DB) StudentRecordRepository {
	return &studentRecordRepository{db: db}
}

func (r *studentRecordRepository) Create(ctx context.Context, record *models.StudentRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRollNumber
		}
		return &StoreError{Op: "insert", Err: err}
	}

	return nil
}

func (r *studentRecordRepository) List(ctx context.Context) ([]models.StudentRecord, error) {
	records := make([]models.StudentRecord, 0)
	if err := r.db.WithContext(ctx).
		Order("recorded_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	return records, nil
}

// GetByRollNumber returns gorm.ErrRecordNotFound when no record matches.
func (r *studentRecordRepository) GetByRollNumber(ctx context.Context, rollNumber string) (models.StudentRecord, error) {
	var record models.StudentRecord
	err := r.db.WithContext(ctx).Where("roll_number = ?", rollNumber).First(&record).Error
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.StudentRecord{}, err
	default:
		return models.StudentRecord{}, &StoreError{Op: "get", Err: err}
	}
}

func (r *studentRecordRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.StudentRecord{}).Count(&total).Error; err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}

	return total, nil
}
