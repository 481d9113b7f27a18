package commands

import (
	"encoding/json"
	"time"

	"relist/contexts/marketplace/listing-service/ports"
)

const (
	EventTypeListingCreated = "listing.created"
	EventTypeListingRenewed = "listing.renewed"
	EventTypeSweepCompleted = "listing.sweep_completed"
)

func newListingEnvelope(
	eventID string,
	eventType string,
	listingID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "listing-service",
		SchemaVersion:    1,
		PartitionKeyPath: "listing_id",
		PartitionKey:     listingID,
		Data:             payload,
	}, nil
}
