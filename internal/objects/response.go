package objects

// ErrorResponse is the body of every non-repair error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RepairFailure is the body returned when the input could not be turned into valid JSON.
type RepairFailure struct {
	Error         string `json:"error"`
	OriginalInput string `json:"original_input"`
	AttemptedFix  string `json:"attempted_fix"`
	Details       string `json:"details"`
}

const RepairFailureMessage = "Failed to parse JSON after attempting repairs."

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type RepairStats struct {
	Unchanged int64 `json:"unchanged"`
	Repaired  int64 `json:"repaired"`
	Failed    int64 `json:"failed"`
	CacheHits int64 `json:"cache_hits"`
}
