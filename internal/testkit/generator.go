package testkit

import (
	"math"
	"math/rand"
)

// GroupGeneratorConfig configures the two-group data generator
type GroupGeneratorConfig struct {
	Group1Name string  `json:"group1_name"`
	Group2Name string  `json:"group2_name"`
	N1         int     `json:"n1"`
	N2         int     `json:"n2"`
	Mean1      float64 `json:"mean1"`
	Mean2      float64 `json:"mean2"`
	StdDev     float64 `json:"std_dev"`
	Decimals   int     `json:"decimals"` // rounding; fewer decimals produce ties
	Seed       int64   `json:"seed"`
}

// DefaultGroupConfig returns a moderate shift between two normal groups
func DefaultGroupConfig() GroupGeneratorConfig {
	return GroupGeneratorConfig{
		Group1Name: "Control",
		Group2Name: "Treatment",
		N1:         30,
		N2:         30,
		Mean1:      50,
		Mean2:      55,
		StdDev:     10,
		Decimals:   2,
		Seed:       42,
	}
}

// GroupDataGenerator generates labeled measurements in shuffled row order
type GroupDataGenerator struct {
	config GroupGeneratorConfig
	rng    *rand.Rand
}

// NewGroupDataGenerator creates a generator; equal seeds give equal rows
func NewGroupDataGenerator(config GroupGeneratorConfig) *GroupDataGenerator {
	return &GroupDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns Group/Value rows for both groups, interleaved
func (g *GroupDataGenerator) Generate() [][]interface{} {
	rows := make([][]interface{}, 0, g.config.N1+g.config.N2)
	for i := 0; i < g.config.N1; i++ {
		rows = append(rows, []interface{}{g.config.Group1Name, g.sample(g.config.Mean1)})
	}
	for i := 0; i < g.config.N2; i++ {
		rows = append(rows, []interface{}{g.config.Group2Name, g.sample(g.config.Mean2)})
	}
	g.rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	return rows
}

func (g *GroupDataGenerator) sample(mean float64) float64 {
	v := mean + g.rng.NormFloat64()*g.config.StdDev
	scale := math.Pow(10, float64(g.config.Decimals))
	return math.Round(v*scale) / scale
}
