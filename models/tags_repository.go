package models

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TagsRepository struct {
	db *gorm.DB
}

func NewTagsRepository(db *gorm.DB) *TagsRepository {
	return &TagsRepository{
		db: db,
	}
}

func (r *TagsRepository) GetAll() ([]Tag, error) {
	var tags []Tag
	if err := r.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagsRepository) GetBySlug(slug string) (*Tag, error) {
	var tag Tag
	if err := r.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreate resolves a tag name to a row, creating it when absent.
// Deduplication happens on the slug, so "4K" reuses an existing "4k".
// A concurrent insert losing the race against the unique slug index is
// resolved by re-fetching the winner.
func (r *TagsRepository) GetOrCreate(name string) (*Tag, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, errors.New("tag name yields an empty slug")
	}

	tag, err := r.GetBySlug(slug)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := Tag{Name: name, Slug: slug}
	if err := r.db.Create(&created).Error; err != nil {
		if isUniqueViolation(err) {
			return r.GetBySlug(slug)
		}
		return nil, err
	}
	return &created, nil
}

// isUniqueViolation recognizes the postgres unique_violation code
// regardless of which driver produced the error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
