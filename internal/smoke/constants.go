package smoke

import "time"

// Defaults applied by Config.withDefaults.
const (
	DefaultRounds  = 2
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Routes exercised by a run.
const (
	pathHealth     = "/healthz"
	pathSummary    = "/api/summary"
	pathStateGraph = "/callbacks/state-graph"
	pathDashboard  = "/"
)
