package dto

// DashboardResponse resumen operativo de un local.
type DashboardResponse struct {
	LocationID       string         `json:"location_id"`
	BatchesByStatus  map[string]int `json:"batches_by_status"`
	ActiveBatches    int            `json:"active_batches"`
	PendingTransfers int            `json:"pending_transfers"`
	DeliveriesMonth  int            `json:"deliveries_month"`
	AlertCount       int            `json:"alert_count"`
}
