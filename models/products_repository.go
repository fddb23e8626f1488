package models

import (
	"errors"
	"log"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilters are independently combinable; the zero value of a
// field means "no restriction" (Featured uses a pointer so that an
// explicit false still filters).
type ProductFilters struct {
	Category string
	Tag      string // tag slug
	Featured *bool
	Limit    int
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order asc, created_at asc")
}

// GetFilteredProducts composes the filter options into a single fetch
// and returns products with their tag and image collections embedded,
// newest first.
func (r *ProductsRepository) GetFilteredProducts(filters ProductFilters) ([]Product, error) {
	query := r.db.Model(&Product{}).
		Preload("Tags").
		Preload("Images", imageOrder).
		Order("products.created_at desc")

	// Filter
	if filters.Category != "" {
		query = query.Where("products.category = ?", filters.Category)
	}
	if filters.Featured != nil {
		query = query.Where("products.featured = ?", *filters.Featured)
	}
	if filters.Tag != "" {
		// A slug resolves to at most one tag, so the join cannot
		// duplicate product rows.
		query = query.
			Joins("JOIN product_tags ON product_tags.product_id = products.id").
			Joins("JOIN tags ON tags.id = product_tags.tag_id").
			Where("tags.slug = ?", filters.Tag)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(id string) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Tags").
		Preload("Images", imageOrder).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// CreateProduct inserts the product row, then inserts tag associations
// and image rows as best-effort follow-ups: a follow-up failure is
// logged but does not roll back the already-created product.
func (r *ProductsRepository) CreateProduct(product *Product, tagIDs []string, images []ProductImage) (*Product, error) {
	if err := r.db.Create(product).Error; err != nil {
		return nil, err
	}

	if len(tagIDs) > 0 {
		rows := make([]ProductTag, len(tagIDs))
		for i, tagID := range tagIDs {
			rows[i] = ProductTag{ProductID: product.ID, TagID: tagID}
		}
		if err := r.db.Create(&rows).Error; err != nil {
			log.Printf("error adding tags to product %s: %v", product.ID, err)
		}
	}

	if len(images) > 0 {
		for i := range images {
			images[i].ProductID = product.ID
		}
		if err := r.db.Create(&images).Error; err != nil {
			log.Printf("error adding images to product %s: %v", product.ID, err)
		}
	}

	return product, nil
}

// UpdateProduct updates scalar columns from the given column map. A nil
// tagIDs or images pointer leaves the corresponding association set
// untouched; a non-nil pointer (including one to an empty slice)
// replaces the full set.
func (r *ProductsRepository) UpdateProduct(id string, updates map[string]interface{}, tagIDs *[]string, images *[]ProductImage) (*Product, error) {
	if len(updates) > 0 {
		res := r.db.Model(&Product{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrProductNotFound
		}
	}

	if tagIDs != nil {
		if err := r.ReplaceTags(id, *tagIDs); err != nil {
			log.Printf("error updating tags for product %s: %v", id, err)
		}
	}
	if images != nil {
		if err := r.ReplaceImages(id, *images); err != nil {
			log.Printf("error updating images for product %s: %v", id, err)
		}
	}

	var product Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ReplaceTags deletes every tag association for the product and
// reinserts the submitted set. It does not diff.
func (r *ProductsRepository) ReplaceTags(productID string, tagIDs []string) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&ProductTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]ProductTag, len(tagIDs))
	for i, tagID := range tagIDs {
		rows[i] = ProductTag{ProductID: productID, TagID: tagID}
	}
	return r.db.Create(&rows).Error
}

// ReplaceImages deletes every image row for the product and reinserts
// the submitted set. It does not diff.
func (r *ProductsRepository) ReplaceImages(productID string, images []ProductImage) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].ID = ""
		images[i].ProductID = productID
	}
	return r.db.Create(&images).Error
}

// DeleteProduct hard-deletes the row; associated join rows and images
// go with it through the cascade constraints.
func (r *ProductsRepository) DeleteProduct(id string) error {
	res := r.db.Where("id = ?", id).Delete(&Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
