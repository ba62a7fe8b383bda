package repositories

import (
	"context"
	"errors"
	"strings"

	"finsight/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepositoryInterface interface {
	ListAll(ctx context.Context) ([]db_models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.Category, error)
	EnsureBySlug(ctx context.Context, slug string) (*db_models.Category, error)
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{db: db}
}

type CategoryRepository struct {
	db *gorm.DB
}

func (c CategoryRepository) ListAll(ctx context.Context) ([]db_models.Category, error) {

	var categories []db_models.Category
	err := c.db.WithContext(ctx).Order("slug ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (c CategoryRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Category, error) {

	var category db_models.Category
	err := c.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (c CategoryRepository) EnsureBySlug(ctx context.Context, slug string) (*db_models.Category, error) {

	category := db_models.Category{
		Name: titleFromSlug(slug),
		Slug: slug,
	}
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(&category).Error
	if err != nil {
		return nil, err
	}

	return c.GetBySlug(ctx, slug)
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
