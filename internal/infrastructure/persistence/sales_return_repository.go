package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/returns"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesReturnRepository implements SalesReturnRepository using GORM
type GormSalesReturnRepository struct {
	db *gorm.DB
}

// NewGormSalesReturnRepository creates a new GormSalesReturnRepository
func NewGormSalesReturnRepository(db *gorm.DB) *GormSalesReturnRepository {
	return &GormSalesReturnRepository{db: db}
}

// FindByID finds a sales return with its items by ID
func (r *GormSalesReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds a sales return by ID within an agency
func (r *GormSalesReturnRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*returns.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a sales return by its number within an agency
func (r *GormSalesReturnRepository) FindByNumber(ctx context.Context, agencyID uuid.UUID, returnNumber string) (*returns.SalesReturn, error) {
	var model models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("agency_id = ? AND return_number = ?", agencyID, returnNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds sales returns for a customer with pagination
func (r *GormSalesReturnRepository) FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]returns.SalesReturn, error) {
	var returnModels []models.SalesReturnModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SalesReturnModel{}).
			Where("agency_id = ? AND customer_id = ?", agencyID, customerID),
		filter,
	)

	if err := query.Preload("Items").Find(&returnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(returnModels), nil
}

// FindAllByCustomer finds every sales return for a customer, items included
func (r *GormSalesReturnRepository) FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]returns.SalesReturn, error) {
	var returnModels []models.SalesReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("agency_id = ? AND customer_id = ?", agencyID, customerID).
		Order("created_at ASC").
		Find(&returnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(returnModels), nil
}

// FindByStatus finds sales returns by status for an agency
func (r *GormSalesReturnRepository) FindByStatus(ctx context.Context, agencyID uuid.UUID, status returns.ReturnStatus, filter shared.Filter) ([]returns.SalesReturn, error) {
	var returnModels []models.SalesReturnModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SalesReturnModel{}).
			Where("agency_id = ? AND status = ?", agencyID, status),
		filter,
	)

	if err := query.Preload("Items").Find(&returnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(returnModels), nil
}

// FindAllForAgency finds all sales returns for an agency
func (r *GormSalesReturnRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]returns.SalesReturn, error) {
	var returnModels []models.SalesReturnModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SalesReturnModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	if err := query.Preload("Items").Find(&returnModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(returnModels), nil
}

// Save persists a sales return and its items
func (r *GormSalesReturnRepository) Save(ctx context.Context, sr *returns.SalesReturn) error {
	model := models.SalesReturnModelFromDomain(sr)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Items {
			model.Items[i].ReturnID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CountForAgency counts sales returns for an agency with optional filters
func (r *GormSalesReturnRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.SalesReturnModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a return number exists for an agency
func (r *GormSalesReturnRepository) ExistsByNumber(ctx context.Context, agencyID uuid.UUID, returnNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesReturnModel{}).
		Where("agency_id = ? AND return_number = ?", agencyID, returnNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSalesReturnRepository) toDomainSlice(returnModels []models.SalesReturnModel) []returns.SalesReturn {
	result := make([]returns.SalesReturn, len(returnModels))
	for i, model := range returnModels {
		result[i] = *model.ToDomain()
	}
	return result
}

// applyFilter applies filter options to the query
func (r *GormSalesReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormSalesReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR customer_name ILIKE ? OR invoice_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "invoice_id":
			query = query.Where("invoice_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
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

// Ensure GormSalesReturnRepository implements SalesReturnRepository
var _ returns.SalesReturnRepository = (*GormSalesReturnRepository)(nil)
