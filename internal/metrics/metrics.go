// Package metrics exposes Prometheus collectors for room and game activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maketen"

// Answer outcomes.
const (
	OutcomeCorrect        = "correct"
	OutcomeWrong          = "wrong"
	OutcomeInvalidDigits  = "invalid_digits"
	OutcomeInvalidFormula = "invalid_formula"
)

// Recorder tracks room, player and answer activity. A nil *Recorder is a no-op.
type Recorder struct {
	roomsActive   prometheus.Gauge
	playersActive prometheus.Gauge
	gamesStarted  prometheus.Counter
	gamesEnded    prometheus.Counter
	answers       *prometheus.CounterVec
	skips         prometheus.Counter
	finalScores   prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		roomsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Rooms currently held in memory.",
		}),
		playersActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_active",
			Help:      "Players currently seated in a room.",
		}),
		gamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Rounds that entered the active phase.",
		}),
		gamesEnded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_ended_total",
			Help:      "Rounds that ran to completion.",
		}),
		answers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Submitted formulas by outcome.",
		}, []string{"outcome"}),
		skips: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skips_total",
			Help:      "Skipped puzzles.",
		}),
		finalScores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Per-player score at the end of a round.",
			Buckets:   prometheus.LinearBuckets(0, 20, 10),
		}),
	}
}

func (r *Recorder) RoomOpened() {
	if r == nil {
		return
	}
	r.roomsActive.Inc()
}

func (r *Recorder) RoomClosed() {
	if r == nil {
		return
	}
	r.roomsActive.Dec()
}

func (r *Recorder) PlayerJoined() {
	if r == nil {
		return
	}
	r.playersActive.Inc()
}

func (r *Recorder) PlayerLeft() {
	if r == nil {
		return
	}
	r.playersActive.Dec()
}

func (r *Recorder) GameStarted() {
	if r == nil {
		return
	}
	r.gamesStarted.Inc()
}

// GameEnded counts a finished round and observes each final score.
func (r *Recorder) GameEnded(scores []int) {
	if r == nil {
		return
	}
	r.gamesEnded.Inc()
	for _, s := range scores {
		r.finalScores.Observe(float64(s))
	}
}

func (r *Recorder) Answer(outcome string) {
	if r == nil {
		return
	}
	r.answers.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Skip() {
	if r == nil {
		return
	}
	r.skips.Inc()
}
