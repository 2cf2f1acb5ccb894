package anticheat

// StatsSnapshot is the gameplay telemetry a risk evaluation runs over. The
// fields are whatever the ingestion pipeline last observed for the player;
// the scorer must stay bounded for arbitrary, even adversarial, values.
type StatsSnapshot struct {
	PlayerID         string  `json:"player_id"`
	PlayerName       string  `json:"player_name"`
	HeadshotRatio    float64 `json:"headshot_ratio"`
	KillDeathRatio   float64 `json:"kill_death_ratio"`
	WinRate          float64 `json:"win_rate"`
	ReactionTimeMs   float64 `json:"reaction_time_ms"`
	ConsistencyScore float64 `json:"consistency_score"`
	ReportCount      int     `json:"report_count"`
}

// RiskBand groups scores for dashboard colouring. Bands never trigger any
// automated action; they only sort and colour the admin view.
type RiskBand string

const (
	BandLow    RiskBand = "low"
	BandMedium RiskBand = "medium"
	BandHigh   RiskBand = "high"
)

// Evaluation pairs a snapshot with its computed score for the admin surface.
type Evaluation struct {
	StatsSnapshot
	Score int      `json:"score"`
	Band  RiskBand `json:"band"`
}
