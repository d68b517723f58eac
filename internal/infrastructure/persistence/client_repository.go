package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/crm"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/finance"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	var client crm.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByIDNumber finds a client by national ID number
func (r *GormClientRepository) FindByIDNumber(ctx context.Context, idNumber string) (*crm.Client, error) {
	var client crm.Client
	if err := r.db.WithContext(ctx).
		Where("id_number = ?", idNumber).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Client, error) {
	var clients []crm.Client
	query := r.applyFilter(r.db.WithContext(ctx).Model(&crm.Client{}), filter)
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindByCreator finds the clients created by a user
func (r *GormClientRepository) FindByCreator(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]crm.Client, error) {
	var clients []crm.Client
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&crm.Client{}).Where("created_by = ?", userID),
		filter,
	)
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *crm.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete deletes a client together with its dependent records. Document
// and quotation rows go with the client; appointments keep their history
// and are detached instead.
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&crm.Document{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&finance.CdnQuotation{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&scheduling.Appointment{}).
			Where("client_id = ?", id).
			Update("client_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&crm.Client{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&crm.Client{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByIDNumber checks if a client with the given ID number exists
func (r *GormClientRepository) ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error) {
	if idNumber == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&crm.Client{}).
		Where("id_number = ?", idNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormClientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("last_name ASC, first_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClientRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR id_number ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}

	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ crm.ClientRepository = (*GormClientRepository)(nil)
