package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/gema-reportcard/internal/dto"
	"github.com/noah-isme/gema-reportcard/internal/models"
	"github.com/noah-isme/gema-reportcard/internal/observability"
	"github.com/noah-isme/gema-reportcard/internal/repository"
	"github.com/noah-isme/gema-reportcard/internal/scoring"
)

var (
	// ErrDuplicateRollNumber indicates the roll number already has a saved record.
	ErrDuplicateRollNumber = repository.ErrDuplicateRollNumber
	// ErrRecordNotFound indicates no record exists for the requested roll number.
	ErrRecordNotFound = errors.New("record not found")
)

// ReportCardService computes report cards and manages their persistence.
type ReportCardService interface {
	ValidateMark(component scoring.Component, value float64) error
	Prepare(ctx context.Context, req dto.ReportCardRequest) (dto.ReportCard, error)
	Save(ctx context.Context, req dto.ReportCardRequest) (dto.StudentRecordResponse, error)
	List(ctx context.Context) ([]dto.StudentRecordResponse, error)
	Find(ctx context.Context, rollNumber string) (dto.StudentRecordResponse, error)
}

type reportCardService struct {
	repo      repository.StudentRecordRepository
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewReportCardService constructs the report card service.
func NewReportCardService(repo repository.StudentRecordRepository, validator *validator.Validate, logger zerolog.Logger) ReportCardService {
	return &reportCardService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "report_card_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-reportcard/internal/service/report_card"),
		now:       time.Now,
	}
}

func (s *reportCardService) ValidateMark(component scoring.Component, value float64) error {
	return validateMark(s.validator, component, value)
}

func (s *reportCardService) Prepare(ctx context.Context, req dto.ReportCardRequest) (dto.ReportCard, error) {
	_, span := s.tracer.Start(ctx, "report_card.prepare")
	defer span.End()

	card, err := s.prepare(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ReportCard{}, err
	}

	span.SetAttributes(attribute.Float64("report_card.final_score", card.Contributions.Final))
	return card, nil
}

func (s *reportCardService) Save(ctx context.Context, req dto.ReportCardRequest) (dto.StudentRecordResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report_card.save")
	defer span.End()

	card, err := s.prepare(req)
	if err != nil {
		observability.RecordsSaved().WithLabelValues(observability.OutcomeInvalid).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.StudentRecordResponse{}, err
	}
	span.SetAttributes(attribute.String("report_card.roll_number", card.RollNumber))

	record := models.StudentRecord{
		Name:                 card.Name,
		RollNumber:           card.RollNumber,
		Midterm:              card.Midterm,
		Endterm:              card.Endterm,
		Internal:             card.Internal,
		MidtermContribution:  card.Contributions.Midterm,
		EndtermContribution:  card.Contributions.Endterm,
		InternalContribution: card.Contributions.Internal,
		FinalScore:           card.Contributions.Final,
		RecordedAt:           s.now().UTC(),
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrDuplicateRollNumber) {
			observability.RecordsSaved().WithLabelValues(observability.OutcomeDuplicate).Inc()
			span.SetStatus(codes.Error, "duplicate_roll_number")
			s.logger.Info().Str("roll_number", record.RollNumber).Msg("rejected duplicate roll number")
			return dto.StudentRecordResponse{}, ErrDuplicateRollNumber
		}

		observability.RecordsSaved().WithLabelValues(observability.OutcomeError).Inc()
		span.SetStatus(codes.Error, "insert_failed")
		s.logger.Error().Err(err).Str("roll_number", record.RollNumber).Msg("failed to save student record")
		return dto.StudentRecordResponse{}, asStoreError("insert", err)
	}

	observability.RecordsSaved().WithLabelValues(observability.OutcomeSaved).Inc()
	observability.ReportCardsComputed().Inc()
	observability.FinalScores().Observe(record.FinalScore)
	span.SetAttributes(attribute.Int64("report_card.id", int64(record.ID)))
	s.logger.Info().
		Uint("id", record.ID).
		Str("roll_number", record.RollNumber).
		Float64("final_score", record.FinalScore).
		Msg("student record saved")

	return dto.NewStudentRecordResponse(record), nil
}

func (s *reportCardService) List(ctx context.Context) ([]dto.StudentRecordResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report_card.list")
	defer span.End()

	records, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_failed")
		s.logger.Error().Err(err).Msg("failed to list student records")
		return nil, asStoreError("list", err)
	}

	span.SetAttributes(attribute.Int("report_card.count", len(records)))
	return dto.NewStudentRecordResponses(records), nil
}

func (s *reportCardService) Find(ctx context.Context, rollNumber string) (dto.StudentRecordResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report_card.find")
	defer span.End()

	rollNumber = strings.TrimSpace(rollNumber)
	if rollNumber == "" {
		err := &ValidationError{Field: "roll_number", Message: "Roll number cannot be empty!"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.StudentRecordResponse{}, err
	}

	record, err := s.repo.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "record_not_found")
			return dto.StudentRecordResponse{}, ErrRecordNotFound
		}
		span.SetStatus(codes.Error, "lookup_failed")
		return dto.StudentRecordResponse{}, asStoreError("get", err)
	}

	return dto.NewStudentRecordResponse(record), nil
}

func (s *reportCardService) prepare(req dto.ReportCardRequest) (dto.ReportCard, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.RollNumber = strings.TrimSpace(req.RollNumber)
	req.Midterm = scoring.Unsigned(req.Midterm)
	req.Endterm = scoring.Unsigned(req.Endterm)
	req.Internal = scoring.Unsigned(req.Internal)

	if err := validateRequest(s.validator, req); err != nil {
		return dto.ReportCard{}, err
	}

	card := dto.ReportCard{
		Name:          req.Name,
		RollNumber:    req.RollNumber,
		Midterm:       req.Midterm,
		Endterm:       req.Endterm,
		Internal:      req.Internal,
		Contributions: scoring.Compute(req.Midterm, req.Endterm, req.Internal),
	}

	return card, nil
}

func asStoreError(op string, err error) error {
	var storeErr *repository.StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &repository.StoreError{Op: op, Err: err}
}
