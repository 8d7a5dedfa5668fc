package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/statement"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatementRepository implements StatementRepository using GORM
type GormStatementRepository struct {
	db *gorm.DB
}

// NewGormStatementRepository creates a new GormStatementRepository
func NewGormStatementRepository(db *gorm.DB) *GormStatementRepository {
	return &GormStatementRepository{db: db}
}

// FindByIDForAgency finds a statement by ID within an agency
func (r *GormStatementRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*statement.Statement, error) {
	var model models.StatementModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds statements for a customer with pagination
func (r *GormStatementRepository) FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]statement.Statement, error) {
	var statementModels []models.StatementModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StatementModel{}).
			Where("agency_id = ? AND customer_id = ?", agencyID, customerID),
		filter,
	)

	if err := query.Find(&statementModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(statementModels), nil
}

// FindAllForAgency finds all statements for an agency
func (r *GormStatementRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]statement.Statement, error) {
	var statementModels []models.StatementModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StatementModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	if err := query.Find(&statementModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(statementModels), nil
}

// Save persists a statement
func (r *GormStatementRepository) Save(ctx context.Context, st *statement.Statement) error {
	model := models.StatementModelFromDomain(st)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForAgency counts statements for an agency with optional filters
func (r *GormStatementRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.StatementModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStatementRepository) toDomainSlice(statementModels []models.StatementModel) []statement.Statement {
	result := make([]statement.Statement, len(statementModels))
	for i, model := range statementModels {
		result[i] = *model.ToDomain()
	}
	return result
}

// applyFilter applies filter options to the query
func (r *GormStatementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStatementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormStatementRepository implements StatementRepository
var _ statement.StatementRepository = (*GormStatementRepository)(nil)
