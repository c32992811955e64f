package ports

import "context"

// DeliveryBatch is a named, saved set of delivery requests: an item and
// a destination coordinate given as raw lat/lon text, exactly as loaded
// from or written to storage.
type DeliveryBatch struct {
	Item    string
	LatText string
	LonText string
}

// DeliveryRepository persists and retrieves named batches of delivery
// requests, so a courier's stop list can be saved once and planned
// against repeatedly.
type DeliveryRepository interface {
	SaveBatch(ctx context.Context, batchName string, items []DeliveryBatch) error
	LoadBatch(ctx context.Context, batchName string) ([]DeliveryBatch, error)
	ListBatches(ctx context.Context) ([]string, error)
}
