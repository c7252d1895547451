package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"klondike/searcher"
)

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates outDir/name/<timestamp> and writes all files there.
func NewWriter(outDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000")
	baseDir := filepath.Join(outDir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seed", "draws", "suggestions", "first_category", "start_time", "end_time", "duration"}
	return w.write("games.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Draws),
			strconv.Itoa(record.Suggestions),
			record.FirstCategory.String(),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "category", "kind", "resumed_after", "resumed", "rules_evaluated", "duration"}
	return w.write("moves.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Category.String(),
			string(record.Kind),
			record.ResumedAfter.String(),
			strconv.FormatBool(record.Resumed),
			strconv.Itoa(record.RulesEvaluated),
			record.Duration.String(),
		}
	})
}

func (w *Writer) WriteCategoryCounts(c Collector) error {
	header := []string{"category", "name", "count"}
	return w.write("categories.csv", header, int(searcher.MaxCategory)+1, func(i int) []string {
		category := searcher.Category(i)
		return []string{
			strconv.Itoa(i),
			category.String(),
			strconv.Itoa(c.Count(category)),
		}
	})
}

func (w *Writer) WriteThroughput(records []ThroughputMetric) error {
	header := []string{"goroutines", "suggestions", "duration", "per_second"}
	return w.write("throughput.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Suggestions),
			record.Duration.String(),
			strconv.FormatFloat(record.PerSecond(), 'f', 1, 64),
		}
	})
}

func (w *Writer) write(name string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
