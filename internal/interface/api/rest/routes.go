package rest

const (
	// api
	RouteAPI = "/api"

	RouteUsers = RouteAPI + "/users"

	// ops
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
