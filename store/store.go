// Package store is the persistence boundary for businesses, customers and accounts.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"guia-piracicaba-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ColumnViews is omitted by writes that must not overwrite concurrent view increments.
const ColumnViews = "views"

type BusinessStore interface {
	// ListBusinesses returns every business, newest first.
	ListBusinesses(ctx context.Context) ([]models.Business, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error)
	CreateBusiness(ctx context.Context, b *models.Business) error
	// UpdateBusiness writes the whole record except the omitted columns.
	UpdateBusiness(ctx context.Context, b *models.Business, omit ...string) error
	DeleteBusiness(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ListNeighborhoods(ctx context.Context) ([]string, error)
}

type CustomerStore interface {
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

// Store is the full set of operations the handlers use.
type Store interface {
	BusinessStore
	CustomerStore
	UserStore
}

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var businesses []models.Business
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return businesses, nil
}

func (s *GormStore) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var b models.Business
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// CreateBusiness assigns the next display code when none is set.
func (s *GormStore) CreateBusiness(ctx context.Context, b *models.Business) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if b.Code == "" {
			var count int64
			if err := tx.Unscoped().Model(&models.Business{}).Count(&count).Error; err != nil {
				return fmt.Errorf("count businesses: %w", err)
			}
			b.Code = models.FormatCode(count + 1)
		}
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("create business: %w", err)
		}
		return nil
	})
}

// UpdateBusiness replaces the whole record, leaving the omitted columns as stored.
func (s *GormStore) UpdateBusiness(ctx context.Context, b *models.Business, omit ...string) error {
	// Save inserts when no row matches, so check first.
	var exists int64
	if err := s.DB.WithContext(ctx).Model(&models.Business{}).Where("id = ?", b.ID).Count(&exists).Error; err != nil {
		return fmt.Errorf("update business %s: %w", b.ID, err)
	}
	if exists == 0 {
		return ErrNotFound
	}
	tx := s.DB.WithContext(ctx)
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	if err := tx.Save(b).Error; err != nil {
		return fmt.Errorf("update business %s: %w", b.ID, err)
	}
	return nil
}

func (s *GormStore) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	result := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Business{})
	if result.Error != nil {
		return fmt.Errorf("delete business %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := s.DB.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("increment views %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListNeighborhoods returns the distinct non-empty neighborhoods of active businesses.
func (s *GormStore) ListNeighborhoods(ctx context.Context) ([]string, error) {
	var neighborhoods []string
	if err := s.DB.WithContext(ctx).Model(&models.Business{}).
		Where("neighborhood <> '' AND (is_active IS NULL OR is_active = ?)", true).
		Distinct().Pluck("neighborhood", &neighborhoods).Error; err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	sort.Strings(neighborhoods)
	return neighborhoods, nil
}

func (s *GormStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *GormStore) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *GormStore) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *GormStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
