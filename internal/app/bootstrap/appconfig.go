// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, request limits). AppConfig is everything specific
// to this service: the document store it reads, the deadlines on its
// fetches, and the shape of the dashboard payload.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// FetchTimeout bounds each dashboard source fetch (memberships,
	// attendance, payments). A source that misses it degrades to empty
	// data instead of failing the dashboard.
	FetchTimeout time.Duration

	// RecentVisits is how many formatted attendance rows the dashboard
	// view-model carries.
	RecentVisits int
}
