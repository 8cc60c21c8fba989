package gating

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Criteria holds the thresholds a run must clear before it is registered,
// and the margins used when comparing against the current champion.
type Criteria struct {
	// Performance floors
	MinAccuracy  float64 `yaml:"min_accuracy"`
	MinF1Score   float64 `yaml:"min_f1_score"`
	MinPrecision float64 `yaml:"min_precision"`
	MinRecall    float64 `yaml:"min_recall"`

	// Improvement required to displace the champion
	MinAccuracyImprovement float64 `yaml:"min_accuracy_improvement"`

	// Latency requirements
	MaxLatencyP95 time.Duration `yaml:"max_latency_p95"`
	MaxLatencyP99 time.Duration `yaml:"max_latency_p99"`

	// Cost trade-off margins
	MaxCostIncrease float64 `yaml:"max_cost_increase"`
	MinCostSavings  float64 `yaml:"min_cost_savings"`
}

func Default() Criteria {
	return Criteria{
		MinAccuracy:            0.90,
		MinF1Score:             0.85,
		MinPrecision:           0.80,
		MinRecall:              0.80,
		MinAccuracyImprovement: 0.02,
		MaxLatencyP95:          3 * time.Second,
		MaxLatencyP99:          5 * time.Second,
		MaxCostIncrease:        0.20,
		MinCostSavings:         0.30,
	}
}

// LoadProfile overlays a YAML profile onto the defaults. Zero-valued fields
// in the file keep their default.
func LoadProfile(path string) (Criteria, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read criteria profile: %w", err)
	}

	var overlay Criteria
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return c, fmt.Errorf("parse criteria profile: %w", err)
	}

	if overlay.MinAccuracy > 0 {
		c.MinAccuracy = overlay.MinAccuracy
	}
	if overlay.MinF1Score > 0 {
		c.MinF1Score = overlay.MinF1Score
	}
	if overlay.MinPrecision > 0 {
		c.MinPrecision = overlay.MinPrecision
	}
	if overlay.MinRecall > 0 {
		c.MinRecall = overlay.MinRecall
	}
	if overlay.MinAccuracyImprovement > 0 {
		c.MinAccuracyImprovement = overlay.MinAccuracyImprovement
	}
	if overlay.MaxLatencyP95 > 0 {
		c.MaxLatencyP95 = overlay.MaxLatencyP95
	}
	if overlay.MaxLatencyP99 > 0 {
		c.MaxLatencyP99 = overlay.MaxLatencyP99
	}
	if overlay.MaxCostIncrease > 0 {
		c.MaxCostIncrease = overlay.MaxCostIncrease
	}
	if overlay.MinCostSavings > 0 {
		c.MinCostSavings = overlay.MinCostSavings
	}

	return c, nil
}

// Store is a concurrency-safe holder for the active criteria. The watcher
// swaps it when the profile file changes; services read it per request.
type Store struct {
	mu sync.RWMutex
	c  Criteria
}

func NewStore(c Criteria) *Store {
	return &Store{c: c}
}

func (s *Store) Get() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c
}

func (s *Store) Set(c Criteria) {
	s.mu.Lock()
	s.c = c
	s.mu.Unlock()
}
