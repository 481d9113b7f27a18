package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) GetListing(ctx context.Context, listingID string) (entities.Listing, error) {
	var row listingModel
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", strings.TrimSpace(listingID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Listing{}, domainerrors.ErrListingNotFound
		}
		return entities.Listing{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateListing(ctx context.Context, listing entities.Listing) error {
	row := listingModelFromEntity(listing)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

// UpdateListing writes the full listing row under a row lock so that two
// concurrent renewals cannot interleave into a lost update.
func (r *Repository) UpdateListing(ctx context.Context, listing entities.Listing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row listingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("listing_id = ?", strings.TrimSpace(listing.ListingID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrListingNotFound
			}
			return err
		}
		return tx.Model(&listingModel{}).
			Where("listing_id = ?", strings.TrimSpace(listing.ListingID)).
			Updates(listingUpdatesFromEntity(listing)).
			Error
	})
}

func (r *Repository) CreateListingWithOutbox(
	ctx context.Context,
	listing entities.Listing,
	envelope ports.EventEnvelope,
) error {
	outboxRow, err := outboxModelFromEnvelope(envelope)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := listingModelFromEntity(listing)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		return nil
	})
}

func (r *Repository) UpdateListingWithOutbox(
	ctx context.Context,
	listing entities.Listing,
	envelope ports.EventEnvelope,
) error {
	outboxRow, err := outboxModelFromEnvelope(envelope)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row listingModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("listing_id = ?", strings.TrimSpace(listing.ListingID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrListingNotFound
			}
			return err
		}
		if err := tx.Model(&listingModel{}).
			Where("listing_id = ?", strings.TrimSpace(listing.ListingID)).
			Updates(listingUpdatesFromEntity(listing)).
			Error; err != nil {
			return err
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrRepositoryInvariantBroke
			}
			return err
		}
		return nil
	})
}

func (r *Repository) ListListings(ctx context.Context, filter ports.ListingFilter) ([]entities.Listing, error) {
	tx := r.db.WithContext(ctx).Model(&listingModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if strings.TrimSpace(filter.SellerID) != "" {
		tx = tx.Where("seller_id = ?", strings.TrimSpace(filter.SellerID))
	}

	var rows []listingModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Listing, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ExpireDueListings is a single bulk UPDATE; rows already expired never match
// the status predicate, which makes repeated sweeps idempotent.
func (r *Repository) ExpireDueListings(ctx context.Context, now time.Time) (int, error) {
	timestamp := now.UTC()
	result := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("status = ? AND expires_at <= ?", string(entities.ListingStatusListed), timestamp).
		Updates(map[string]any{
			"status":     string(entities.ListingStatusExpired),
			"updated_at": timestamp,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func outboxModelFromEnvelope(envelope ports.EventEnvelope) (outboxModel, error) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return outboxModel{}, err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	row, err := outboxModelFromEnvelope(envelope)
	if err != nil {
		return err
	}

	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

type listingModel struct {
	ListingID      string     `gorm:"column:listing_id;primaryKey"`
	SellerID       string     `gorm:"column:seller_id"`
	Title          string     `gorm:"column:title"`
	Description    string     `gorm:"column:description"`
	Brand          string     `gorm:"column:brand"`
	Model          string     `gorm:"column:model"`
	Category       string     `gorm:"column:category"`
	Price          float64    `gorm:"column:price"`
	ImageURL       string     `gorm:"column:image_url"`
	ShippingCost   *float64   `gorm:"column:shipping_cost"`
	ShippingMethod string     `gorm:"column:shipping_method"`
	Status         string     `gorm:"column:status"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ExpiresAt      time.Time  `gorm:"column:expires_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (listingModel) TableName() string {
	return "listings"
}

func listingModelFromEntity(item entities.Listing) listingModel {
	return listingModel{
		ListingID:      strings.TrimSpace(item.ListingID),
		SellerID:       strings.TrimSpace(item.SellerID),
		Title:          strings.TrimSpace(item.Title),
		Description:    strings.TrimSpace(item.Description),
		Brand:          strings.TrimSpace(item.Brand),
		Model:          strings.TrimSpace(item.Model),
		Category:       strings.TrimSpace(item.Category),
		Price:          item.Price,
		ImageURL:       strings.TrimSpace(item.ImageURL),
		ShippingCost:   copyOptionalFloat(item.ShippingCost),
		ShippingMethod: strings.TrimSpace(item.ShippingMethod),
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt.UTC(),
		ExpiresAt:      item.ExpiresAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func listingUpdatesFromEntity(item entities.Listing) map[string]any {
	row := listingModelFromEntity(item)
	return map[string]any{
		"title":           row.Title,
		"description":     row.Description,
		"brand":           row.Brand,
		"model":           row.Model,
		"category":        row.Category,
		"price":           row.Price,
		"image_url":       row.ImageURL,
		"shipping_cost":   row.ShippingCost,
		"shipping_method": row.ShippingMethod,
		"status":          row.Status,
		"created_at":      row.CreatedAt,
		"expires_at":      row.ExpiresAt,
		"updated_at":      row.UpdatedAt,
	}
}

func (m listingModel) toEntity() entities.Listing {
	return entities.Listing{
		ListingID:      m.ListingID,
		SellerID:       m.SellerID,
		Title:          m.Title,
		Description:    m.Description,
		Brand:          m.Brand,
		Model:          m.Model,
		Category:       m.Category,
		Price:          m.Price,
		ImageURL:       m.ImageURL,
		ShippingCost:   copyOptionalFloat(m.ShippingCost),
		ShippingMethod: m.ShippingMethod,
		Status:         entities.ListingStatus(m.Status),
		CreatedAt:      m.CreatedAt.UTC(),
		ExpiresAt:      m.ExpiresAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "listing_outbox"
}

func copyOptionalFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
