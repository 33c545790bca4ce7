package models

// DashboardStats is the admin dashboard headline block.
type DashboardStats struct {
	TotalStations         int     `json:"total_stations"`
	TotalPorts            int     `json:"total_ports"`
	ActiveSessions        int     `json:"active_sessions"`
	TotalRevenue          float64 `json:"total_revenue"`
	AvailablePorts        int     `json:"available_ports"`
	InUsePorts            int     `json:"in_use_ports"`
	UnderMaintenancePorts int     `json:"under_maintenance_ports"`
	OutOfOrderPorts       int     `json:"out_of_order_ports"`
	SessionsToday         int     `json:"sessions_today"`
	RevenueToday          float64 `json:"revenue_today"`
	RegisteredUsers       int     `json:"registered_users"`
}

// StationUsage is the per-station row on the admin dashboard.
type StationUsage struct {
	Station
	Revenue        float64 `json:"revenue"`
	TotalPorts     int     `json:"total_ports"`
	AvailablePorts int     `json:"available_ports"`
	Sessions       int     `json:"sessions"`
}

// VehicleUsage aggregates closed sessions per vehicle.
type VehicleUsage struct {
	VehicleID int64   `json:"vehicle_id"`
	Model     string  `json:"model"`
	Sessions  int     `json:"sessions"`
	EnergyKWh float64 `json:"energy_kwh"`
	Cost      float64 `json:"cost"`
}

// FavoriteStation counts a user's visits and spend at one station.
type FavoriteStation struct {
	StationID int64   `json:"station_id"`
	Name      string  `json:"name"`
	Visits    int     `json:"visits"`
	Spent     float64 `json:"spent"`
}

// UserAnalytics is the personal usage report.
type UserAnalytics struct {
	TotalSpending      float64           `json:"total_spending"`
	TotalSessions      int               `json:"total_sessions"`
	TotalEnergyKWh     float64           `json:"total_energy_kwh"`
	AvgSessionCost     float64           `json:"avg_session_cost"`
	AvgDurationMinutes float64           `json:"avg_duration_minutes"`
	FavoriteStations   []FavoriteStation `json:"favorite_stations"`
	Vehicles           []VehicleUsage    `json:"vehicles"`
}
