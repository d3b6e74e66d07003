package metrics

import (
	"sync/atomic"
	"time"

	"gamesearch/game"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int // Episodes whose rollout reached a terminal state
	Pruned       int // Selections that skipped a child by its bounds
	Nodes        int // Nodes added to the tree
}

type MoveMetric struct {
	Step   int
	Player int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // -1 unless one player took the whole score
	Score          game.Score
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	ChanceMoves    int
}

// Collector counts search events. Its Add methods are called concurrently by
// search workers; Start and Complete bracket a single search.
type Collector interface {
	Start(goroutines, cutoff int)
	AddEpisode()
	AddFullPlayout()
	AddPruned()
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	pruned       atomic.Int64
	nodes        atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.pruned.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Cutoff:       m.cutoff,
		FullPlayouts: int(m.fullPlayouts.Load()),
		Pruned:       int(m.pruned.Load()),
		Nodes:        int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) Start(goroutines, cutoff int) {}
func (dummyCollector) AddEpisode()                  {}
func (dummyCollector) AddFullPlayout()              {}
func (dummyCollector) AddPruned()                   {}
func (dummyCollector) AddNode()                     {}
func (dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
