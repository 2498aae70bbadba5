// Package limits centralizes the hard resource limits every General Bots
// application enforces, so a consumer never invents its own ceiling for a
// shared resource.
package limits

// Script execution limits.
const (
	MaxLoopIterations      = 100_000
	MaxRecursionDepth      = 100
	MaxScriptExecutionSecs = 300
)

// Payload and storage limits.
const (
	MaxFileSizeBytes       = 100 << 20
	MaxUploadSizeBytes     = 50 << 20
	MaxRequestBodyBytes    = 10 << 20
	MaxStringLength        = 10 << 20
	MaxArrayLength         = 1_000_000
	MaxDriveStorageBytes   = 10 << 30
	MaxKBDocumentSizeBytes = 50 << 20
)

// Concurrency and rate limits.
const (
	MaxConcurrentRequestsPerUser = 100
	MaxConcurrentRequestsGlobal  = 10_000
	MaxWebsocketConnsPerUser     = 10
	MaxWebsocketConnsGlobal      = 50_000
	MaxAPICallsPerMinute         = 1000
	MaxAPICallsPerHour           = 10_000
	RateLimitWindowSecs          = 60
	RateLimitBurstMultiplier     = 1.5
)

// Database and LLM limits.
const (
	MaxDBQueryResults       = 10_000
	MaxDBConnsPerTenant     = 20
	MaxLLMTokensPerRequest  = 128_000
	MaxLLMRequestsPerMinute = 60
)

// Tenant-scoped quotas.
const (
	MaxSessionIdleSecs   = 3600
	MaxSessionsPerUser   = 10
	MaxBotsPerTenant     = 100
	MaxToolsPerBot       = 500
	MaxKBDocumentsPerBot = 100_000
	MaxPendingTasks      = 1000
)

// Limits bundles the tunable subset of the limit constants so a tenant or
// deployment can run with tighter ceilings. The zero value is not valid;
// use Default.
type Limits struct {
	MaxLoopIterations            int
	MaxRecursionDepth            int
	MaxRequestBodyBytes          int64
	MaxUploadSizeBytes           int64
	MaxConcurrentRequestsPerUser int
	MaxConcurrentRequestsGlobal  int
	MaxSessionsPerUser           int
	MaxBotsPerTenant             int
	MaxPendingTasks              int
}

// Default returns the standard limits.
func Default() Limits {
	return Limits{
		MaxLoopIterations:            MaxLoopIterations,
		MaxRecursionDepth:            MaxRecursionDepth,
		MaxRequestBodyBytes:          MaxRequestBodyBytes,
		MaxUploadSizeBytes:           MaxUploadSizeBytes,
		MaxConcurrentRequestsPerUser: MaxConcurrentRequestsPerUser,
		MaxConcurrentRequestsGlobal:  MaxConcurrentRequestsGlobal,
		MaxSessionsPerUser:           MaxSessionsPerUser,
		MaxBotsPerTenant:             MaxBotsPerTenant,
		MaxPendingTasks:              MaxPendingTasks,
	}
}
