package models

import "time"

// PortStatusLog is one append-only audit record of a port status transition.
// Rows are never updated or deleted.
type PortStatusLog struct {
	ID        int64     `db:"id" json:"log_id"`
	PortID    int64     `db:"port_id" json:"port_id"`
	OldStatus string    `db:"old_status" json:"old_status"`
	NewStatus string    `db:"new_status" json:"new_status"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}
