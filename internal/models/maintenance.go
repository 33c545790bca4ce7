package models

import "time"

// MaintenanceLog records a reported issue on a port and its resolution.
type MaintenanceLog struct {
	ID           int64      `db:"id" json:"log_id"`
	StationID    int64      `db:"station_id" json:"station_id"`
	PortID       int64      `db:"port_id" json:"port_id"`
	Issue        string     `db:"issue" json:"issue"`
	MaintainDate time.Time  `db:"maintain_date" json:"maintain_date"`
	FixDate      *time.Time `db:"fix_date" json:"fix_date,omitempty"`
	Status       string     `db:"status" json:"status"`
	Technician   string     `db:"technician" json:"technician"`
	StationName  string     `db:"-" json:"station_name,omitempty"`
}
