package httpserver

import "net/http"

// Routes groups handlers by the access level the router applies.
type Routes struct {
	Health http.HandlerFunc

	// Public.
	Signup       http.HandlerFunc
	Login        http.HandlerFunc
	Stations     http.HandlerFunc
	StationPorts http.HandlerFunc
	Estimate     http.HandlerFunc

	// Authenticated.
	VisitedStations http.HandlerFunc
	SessionList     http.HandlerFunc
	SessionStart    http.HandlerFunc
	SessionEnd      http.HandlerFunc
	PortSession     http.HandlerFunc
	PaymentList     http.HandlerFunc
	VehicleList     http.HandlerFunc
	VehicleGet      http.HandlerFunc
	VehicleRegister http.HandlerFunc
	ReviewList      http.HandlerFunc
	ReviewCreate    http.HandlerFunc
	AnalyticsMe     http.HandlerFunc

	// Admin.
	Dashboard        http.HandlerFunc
	StationCreate    http.HandlerFunc
	PortList         http.HandlerFunc
	PortAdd          http.HandlerFunc
	PortOverride     http.HandlerFunc
	PortStatusLog    http.HandlerFunc
	MaintenancePorts http.HandlerFunc
	PortRestore      http.HandlerFunc
	ReviewsAll       http.HandlerFunc

	// Live port status feed.
	StatusFeed http.HandlerFunc
}

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// NewRouter registers endpoints. auth guards user routes; admin is
// applied on top of auth for operator routes.
func NewRouter(routes Routes, auth, admin Middleware) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc, wrappers ...Middleware) {
		if h == nil {
			return
		}
		var handler http.Handler = h
		for i := len(wrappers) - 1; i >= 0; i-- {
			handler = wrappers[i](handler)
		}
		mux.Handle(pattern, handler)
	}

	handle("GET /health", routes.Health)

	handle("POST /api/auth/signup", routes.Signup)
	handle("POST /api/auth/login", routes.Login)
	handle("GET /api/stations", routes.Stations)
	handle("GET /api/stations/{id}/ports", routes.StationPorts)
	handle("GET /api/estimates", routes.Estimate)

	handle("GET /api/stations/visited", routes.VisitedStations, auth)
	handle("GET /api/sessions", routes.SessionList, auth)
	handle("POST /api/sessions", routes.SessionStart, auth)
	handle("POST /api/sessions/{id}/end", routes.SessionEnd, auth)
	handle("GET /api/ports/{id}/session", routes.PortSession, auth)
	handle("GET /api/payments", routes.PaymentList, auth)
	handle("GET /api/vehicles", routes.VehicleList, auth)
	handle("GET /api/vehicles/{id}", routes.VehicleGet, auth)
	handle("POST /api/vehicles", routes.VehicleRegister, auth)
	handle("GET /api/reviews", routes.ReviewList, auth)
	handle("POST /api/reviews", routes.ReviewCreate, auth)
	handle("GET /api/analytics/me", routes.AnalyticsMe, auth)

	handle("GET /api/admin/dashboard", routes.Dashboard, auth, admin)
	handle("POST /api/admin/stations", routes.StationCreate, auth, admin)
	handle("GET /api/admin/ports", routes.PortList, auth, admin)
	handle("POST /api/admin/ports", routes.PortAdd, auth, admin)
	handle("PATCH /api/admin/ports/{id}", routes.PortOverride, auth, admin)
	handle("GET /api/admin/ports/{id}/log", routes.PortStatusLog, auth, admin)
	handle("GET /api/admin/maintenance/ports", routes.MaintenancePorts, auth, admin)
	handle("POST /api/admin/maintenance/ports/{id}/restore", routes.PortRestore, auth, admin)
	handle("GET /api/admin/reviews", routes.ReviewsAll, auth, admin)

	handle("GET /ws/ports", routes.StatusFeed)

	return mux
}
