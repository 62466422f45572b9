package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudioRepository defines decoupled operations for the studio cache.
type StudioRepository interface {
	Put(ctx context.Context, s Studio) error
	GetByID(ctx context.Context, id string) (*Studio, error)
	List(ctx context.Context) ([]Studio, error)
	Search(ctx context.Context, substr string) ([]Studio, error)
	Clear(ctx context.Context) error
}

// ArtistRepository defines decoupled operations for the artist cache.
type ArtistRepository interface {
	Put(ctx context.Context, a Artist) error
	GetByID(ctx context.Context, id string) (*Artist, error)
	List(ctx context.Context) ([]Artist, error)
	Search(ctx context.Context, substr string) ([]Artist, error)
	Clear(ctx context.Context) error
}

// gormStudioRepo is a GORM-backed implementation of StudioRepository.
// Use constructor NewStudioRepository to obtain an instance.
type gormStudioRepo struct{ db *gorm.DB }

// gormArtistRepo is a GORM-backed implementation of ArtistRepository.
// Use constructor NewArtistRepository to obtain an instance.
type gormArtistRepo struct{ db *gorm.DB }

// NewStudioRepository creates a StudioRepository. Accepts *gorm.DB to avoid global access.
func NewStudioRepository(db *gorm.DB) StudioRepository { return &gormStudioRepo{db: db} }

// NewArtistRepository creates an ArtistRepository. Accepts *gorm.DB to avoid global access.
func NewArtistRepository(db *gorm.DB) ArtistRepository { return &gormArtistRepo{db: db} }

func (r *gormStudioRepo) Put(ctx context.Context, s Studio) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&s).Error
}

func (r *gormStudioRepo) GetByID(ctx context.Context, id string) (*Studio, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var studio Studio
	err := r.db.WithContext(ctx).First(&studio, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *gormStudioRepo) List(ctx context.Context) ([]Studio, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var studios []Studio
	if err := r.db.WithContext(ctx).Order("name").Find(&studios).Error; err != nil {
		return nil, err
	}
	return studios, nil
}

func (r *gormStudioRepo) Search(ctx context.Context, substr string) ([]Studio, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var studios []Studio
	pattern := "%" + substr + "%"
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR city LIKE ?", pattern, pattern).
		Find(&studios).Error
	if err != nil {
		return nil, err
	}
	return studios, nil
}

func (r *gormStudioRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Studio{}).Error
}

func (r *gormArtistRepo) Put(ctx context.Context, a Artist) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&a).Error
}

func (r *gormArtistRepo) GetByID(ctx context.Context, id string) (*Artist, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var artist Artist
	err := r.db.WithContext(ctx).First(&artist, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *gormArtistRepo) List(ctx context.Context) ([]Artist, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var artists []Artist
	if err := r.db.WithContext(ctx).Order("name").Find(&artists).Error; err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *gormArtistRepo) Search(ctx context.Context, substr string) ([]Artist, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var artists []Artist
	pattern := "%" + substr + "%"
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR styles LIKE ?", pattern, pattern).
		Find(&artists).Error
	if err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *gormArtistRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Artist{}).Error
}
