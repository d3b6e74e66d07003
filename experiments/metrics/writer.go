package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gamesearch/game"

	"github.com/google/uuid"
)

// AgentConfig describes one agent of an experiment. The mapstructure tags
// let the config package decode it straight from the configuration file.
type AgentConfig struct {
	ID          int           `mapstructure:"id" json:"id"`
	Kind        string        `mapstructure:"kind" json:"kind"` // "mcts" or "random"
	Goroutines  int           `mapstructure:"goroutines" json:"goroutines"`
	Duration    time.Duration `mapstructure:"duration" json:"duration"`
	Episodes    int           `mapstructure:"episodes" json:"episodes"`
	Cutoff      int           `mapstructure:"cutoff" json:"cutoff"`
	Evaluation  string        `mapstructure:"evaluation" json:"evaluation"`
	Exploration float64       `mapstructure:"exploration" json:"exploration"`
	Pruning     bool          `mapstructure:"pruning" json:"pruning"`
	Temperature float64       `mapstructure:"temperature" json:"temperature"` // Zero plays the most visited move
	Seed        uint64        `mapstructure:"seed" json:"seed"`
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer stores the results of one experiment run in its own directory.
type Writer struct {
	dir string
}

// NewWriter creates <base>/<experiment>/<run id>.
func NewWriter(base, experiment string) (*Writer, error) {
	dir := filepath.Join(base, experiment, uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string {
	return w.dir
}

// WriteSetup stores the experiment setup as indented JSON.
func (w *Writer) WriteSetup(setup any) error {
	data, err := json.MarshalIndent(setup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, "setup.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "goroutines", "duration", "episodes", "cutoff", "evaluation", "exploration", "pruning", "temperature", "seed"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			config.Evaluation,
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.FormatBool(config.Pruning),
			strconv.FormatFloat(config.Temperature, 'f', -1, 64),
			strconv.FormatUint(config.Seed, 10),
		}
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "score", "start_time", "end_time", "duration", "total_moves", "chance_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			formatScore(record.Score),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.ChanceMoves),
		}
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "duration", "episodes", "full_playouts", "pruned", "nodes"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Pruned),
			strconv.Itoa(record.Nodes),
		}
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	return writeCSVTo(f, name, header, rows)
}

// writeCSVTo writes and closes out, reporting a failed close.
func writeCSVTo(out io.WriteCloser, name string, header []string, rows [][]string) (err error) {
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, closeErr)
		}
	}()

	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// formatScore joins the components with semicolons to keep them in one CSV field.
func formatScore(score game.Score) string {
	parts := make([]string, len(score))
	for i, v := range score {
		parts[i] = strconv.FormatFloat(v, 'f', 4, 64)
	}
	return strings.Join(parts, ";")
}
