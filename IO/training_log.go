package IO

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/manningwu07/CBOW/cbow"
)

var trainingLogHeader = []string{"epoch", "loss", "pairs", "negatives", "elapsed_ms"}

// TrainingLog writes one CSV row per epoch.
type TrainingLog struct {
	f   *os.File
	w   *csv.Writer
	err error
}

// NewTrainingLog truncates path and writes the header row.
func NewTrainingLog(path string) (*TrainingLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := &TrainingLog{f: f, w: csv.NewWriter(f)}
	if err := l.w.Write(trainingLogHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("error writing training log header: %w", err)
	}
	return l, nil
}

// Record matches cbow.ProgressFunc. The first write error is kept and
// returned by Close.
func (l *TrainingLog) Record(es cbow.EpochStats) {
	if l.err != nil {
		return
	}
	l.err = l.w.Write([]string{
		strconv.Itoa(es.Epoch),
		strconv.FormatFloat(es.Loss, 'g', -1, 64),
		strconv.Itoa(es.Pairs),
		strconv.Itoa(es.NegativeSamples),
		strconv.FormatInt(es.Elapsed.Milliseconds(), 10),
	})
}

func (l *TrainingLog) Close() error {
	l.w.Flush()
	if l.err == nil {
		l.err = l.w.Error()
	}
	if err := l.f.Close(); err != nil && l.err == nil {
		l.err = err
	}
	return l.err
}
