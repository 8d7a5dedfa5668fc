package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/collection"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCollectionRepository implements CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a collection with its cheques and allocations by ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).
		Preload("Cheques").
		Preload("Allocations").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForAgency finds a collection by ID within an agency
func (r *GormCollectionRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*collection.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).
		Preload("Cheques").
		Preload("Allocations").
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a collection by its number within an agency
func (r *GormCollectionRepository) FindByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (*collection.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).
		Preload("Cheques").
		Preload("Allocations").
		Where("agency_id = ? AND collection_number = ?", agencyID, collectionNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds collections for a customer with pagination
func (r *GormCollectionRepository) FindByCustomer(ctx context.Context, agencyID, customerID uuid.UUID, filter shared.Filter) ([]collection.Collection, error) {
	var collectionModels []models.CollectionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CollectionModel{}).
			Where("agency_id = ? AND customer_id = ?", agencyID, customerID),
		filter,
	)

	if err := query.Preload("Cheques").Preload("Allocations").Find(&collectionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(collectionModels), nil
}

// FindAllByCustomer finds every collection for a customer, children included.
// Ordered oldest first to match the invoice settlement walk.
func (r *GormCollectionRepository) FindAllByCustomer(ctx context.Context, agencyID, customerID uuid.UUID) ([]collection.Collection, error) {
	var collectionModels []models.CollectionModel
	if err := r.db.WithContext(ctx).
		Preload("Cheques").
		Preload("Allocations").
		Where("agency_id = ? AND customer_id = ?", agencyID, customerID).
		Order("cash_date ASC, created_at ASC").
		Find(&collectionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(collectionModels), nil
}

// FindAllForAgency finds all collections for an agency
func (r *GormCollectionRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]collection.Collection, error) {
	var collectionModels []models.CollectionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CollectionModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	if err := query.Preload("Cheques").Preload("Allocations").Find(&collectionModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(collectionModels), nil
}

// FindAllocationsByInvoice finds every allocation made against an invoice
// across all of the customer's collections. The allocation rows carry no
// agency column, so the scope comes from joining the parent collection.
func (r *GormCollectionRepository) FindAllocationsByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]collection.InvoiceAllocation, error) {
	var allocationModels []models.CollectionAllocationModel
	if err := r.db.WithContext(ctx).
		Model(&models.CollectionAllocationModel{}).
		Joins("JOIN collections ON collections.id = collection_allocations.collection_id").
		Where("collections.agency_id = ? AND collection_allocations.invoice_id = ?", agencyID, invoiceID).
		Order("collection_allocations.allocated_at ASC").
		Find(&allocationModels).Error; err != nil {
		return nil, err
	}

	allocations := make([]collection.InvoiceAllocation, len(allocationModels))
	for i, model := range allocationModels {
		allocations[i] = *model.ToDomain()
	}
	return allocations, nil
}

// SumAllocationsByInvoice returns the total amount allocated to an invoice
func (r *GormCollectionRepository) SumAllocationsByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.CollectionAllocationModel{}).
		Select("COALESCE(SUM(collection_allocations.amount), 0)").
		Joins("JOIN collections ON collections.id = collection_allocations.collection_id").
		Where("collections.agency_id = ? AND collection_allocations.invoice_id = ?", agencyID, invoiceID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Save persists a collection and its children
func (r *GormCollectionRepository) Save(ctx context.Context, c *collection.Collection) error {
	model := models.CollectionModelFromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Cheques", "Allocations").Save(model).Error; err != nil {
			return err
		}
		return r.saveChildren(tx, model)
	})
}

// SaveWithLock saves a collection with optimistic locking (version check)
func (r *GormCollectionRepository) SaveWithLock(ctx context.Context, c *collection.Collection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.CollectionModel{}).
			Where("id = ?", c.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			return err
		}

		if currentVersion != c.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The collection has been modified by another user")
		}

		c.Version++
		c.UpdatedAt = time.Now()

		model := models.CollectionModelFromDomain(c)
		result := tx.Model(&models.CollectionModel{}).
			Where("id = ? AND version = ?", c.ID, currentVersion).
			Updates(map[string]any{
				"customer_id":        model.CustomerID,
				"customer_name":      model.CustomerName,
				"total_amount":       model.TotalAmount,
				"cash_amount":        model.CashAmount,
				"cash_discount":      model.CashDiscount,
				"cheque_amount":      model.ChequeAmount,
				"allocated_amount":   model.AllocatedAmount,
				"unallocated_amount": model.UnallocatedAmount,
				"cash_date":          model.CashDate,
				"status":             model.Status,
				"version":            model.Version,
				"updated_at":         model.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The collection has been modified by another user")
		}

		return r.saveChildren(tx, model)
	})
}

// saveChildren upserts cheque and allocation rows for a collection.
// Cheques are fixed at recording time and allocations are append-only,
// so rows are never deleted here.
func (r *GormCollectionRepository) saveChildren(tx *gorm.DB, model *models.CollectionModel) error {
	for i := range model.Cheques {
		model.Cheques[i].CollectionID = model.ID
		if err := tx.Save(&model.Cheques[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.Allocations {
		model.Allocations[i].CollectionID = model.ID
		if err := tx.Save(&model.Allocations[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// CountForAgency counts collections for an agency with optional filters
func (r *GormCollectionRepository) CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.CollectionModel{}).Where("agency_id = ?", agencyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a collection number exists for an agency
func (r *GormCollectionRepository) ExistsByNumber(ctx context.Context, agencyID uuid.UUID, collectionNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CollectionModel{}).
		Where("agency_id = ? AND collection_number = ?", agencyID, collectionNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCollectionRepository) toDomainSlice(collectionModels []models.CollectionModel) []collection.Collection {
	collections := make([]collection.Collection, len(collectionModels))
	for i, model := range collectionModels {
		collections[i] = *model.ToDomain()
	}
	return collections
}

// applyFilter applies filter options to the query
func (r *GormCollectionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("cash_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCollectionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("collection_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("cash_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("cash_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormCollectionRepository implements CollectionRepository
var _ collection.CollectionRepository = (*GormCollectionRepository)(nil)
