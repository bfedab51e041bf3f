package scoring

// ScoringConfig holds the point values applied by the server.
type ScoringConfig struct {
	CorrectPoints int // default: 10
	SkipPenalty   int // default: 3, score never drops below 0
}

// DefaultScoringConfig returns production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CorrectPoints: 10,
		SkipPenalty:   3,
	}
}

// Tally is a player's running totals.
type Tally struct {
	Score   int `json:"score"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
	Skip    int `json:"skip"`
}

// Accuracy is correct / (correct + wrong), or 0 with no attempts.
func (t Tally) Accuracy() float64 {
	attempts := t.Correct + t.Wrong
	if attempts == 0 {
		return 0
	}
	return float64(t.Correct) / float64(attempts)
}

// Engine applies scoring rules to tallies.
type Engine struct {
	config ScoringConfig
}

// NewEngine creates a scoring engine with the provided config.
// Zero-valued fields fall back to defaults.
func NewEngine(config ScoringConfig) *Engine {
	def := DefaultScoringConfig()
	if config.CorrectPoints <= 0 {
		config.CorrectPoints = def.CorrectPoints
	}
	if config.SkipPenalty < 0 {
		config.SkipPenalty = def.SkipPenalty
	}
	return &Engine{config: config}
}

// Config returns the active configuration.
func (e *Engine) Config() ScoringConfig { return e.config }

// Correct records a solved puzzle and returns the points earned.
func (e *Engine) Correct(t *Tally) int {
	t.Score += e.config.CorrectPoints
	t.Correct++
	return e.config.CorrectPoints
}

// Wrong records a valid formula that did not reach the target. Score is untouched.
func (e *Engine) Wrong(t *Tally) {
	t.Wrong++
}

// Skip records a skipped puzzle and returns the points actually deducted.
func (e *Engine) Skip(t *Tally) int {
	t.Skip++
	before := t.Score
	t.Score -= e.config.SkipPenalty
	if t.Score < 0 {
		t.Score = 0
	}
	return before - t.Score
}
