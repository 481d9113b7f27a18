package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"relist/contexts/marketplace/bluebook-service/domain/entities"
	"relist/contexts/marketplace/bluebook-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetEntryByTitle(ctx context.Context, title string) (entities.ReferenceEntry, bool, error) {
	var row entryModel
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?)", strings.TrimSpace(title)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ReferenceEntry{}, false, nil
		}
		return entities.ReferenceEntry{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) QueryEntries(ctx context.Context, filter ports.EntryFilter) ([]entities.ReferenceEntry, error) {
	tx := r.db.WithContext(ctx).Model(&entryModel{})
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		tx = tx.Where("brand ILIKE ?", "%"+brand+"%")
	}
	if model := strings.TrimSpace(filter.Model); model != "" {
		tx = tx.Where("model ILIKE ?", "%"+model+"%")
	}
	if filter.QualityTier != "" {
		tx = tx.Where("quality_tier = ?", filter.QualityTier)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}

	var rows []entryModel
	// created_at ASC keeps ties in ingestion order.
	if err := tx.Order("popularity_score DESC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListComparables(ctx context.Context, filter ports.ComparableFilter) ([]entities.ReferenceEntry, error) {
	tx := r.db.WithContext(ctx).Model(&entryModel{})
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		tx = tx.Where("LOWER(brand) = LOWER(?)", brand)
	}
	if model := strings.TrimSpace(filter.Model); model != "" {
		tx = tx.Where("LOWER(model) = LOWER(?)", model)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		tx = tx.Where("LOWER(category) = LOWER(?)", category)
	}

	var rows []entryModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

type entryModel struct {
	EntryID         string    `gorm:"column:entry_id;primaryKey"`
	Title           string    `gorm:"column:title"`
	Brand           string    `gorm:"column:brand"`
	Model           string    `gorm:"column:model"`
	Category        string    `gorm:"column:category"`
	QualityTier     string    `gorm:"column:quality_tier"`
	AvgPrice        float64   `gorm:"column:avg_price"`
	BasePriceCents  int64     `gorm:"column:base_price_cents"`
	PopularityScore int       `gorm:"column:popularity_score"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (entryModel) TableName() string {
	return "bluebook_entries"
}

func (m entryModel) toEntity() entities.ReferenceEntry {
	return entities.ReferenceEntry{
		EntryID:         m.EntryID,
		Title:           m.Title,
		Brand:           m.Brand,
		Model:           m.Model,
		Category:        m.Category,
		QualityTier:     m.QualityTier,
		AvgPrice:        m.AvgPrice,
		BasePriceCents:  m.BasePriceCents,
		PopularityScore: m.PopularityScore,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

func toEntities(rows []entryModel) []entities.ReferenceEntry {
	items := make([]entities.ReferenceEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}
