package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/manningwu07/CBOW/IO"
	"github.com/manningwu07/CBOW/cbow"
	"github.com/manningwu07/CBOW/params"
	"github.com/manningwu07/CBOW/utils"
)

// trainOptions is everything one training run reads from the outside.
type trainOptions struct {
	Input         string // empty: built-in corpus
	StopWordsPath string // empty: bleve English list
	NoStopWords   bool

	Output   string // result.json, always written
	Model    string // optional gob checkpoint
	VocabOut string // optional vocab.json
	LogPath  string // optional per-epoch CSV

	Base params.TrainingConfig // VocabSize is filled in from the corpus
}

type trainReport struct {
	Config params.TrainingConfig
	Corpus params.Corpus
	Pairs  int
	Stats  cbow.TrainStats
	Result cbow.Result
}

// loadStopWords resolves the stop-word source for the tokenizer.
func loadStopWords(path string, disabled bool) (IO.StopWords, error) {
	switch {
	case disabled:
		return nil, nil
	case path != "":
		return IO.LoadStopWordsFile(path)
	default:
		return IO.EnglishStopWords()
	}
}

// runTraining is the whole batch job: parse, build pairs, train, emit.
func runTraining(opts trainOptions, logger *slog.Logger) (*trainReport, error) {
	if opts.Output == "" {
		return nil, errors.New("no output path")
	}
	raw, err := IO.ReadCorpusFile(opts.Input)
	if err != nil {
		return nil, err
	}
	stop, err := loadStopWords(opts.StopWordsPath, opts.NoStopWords)
	if err != nil {
		return nil, err
	}
	corpus := IO.ParseCorpus(raw, stop)

	base := opts.Base
	if base.Seed == 0 {
		base.Seed = uint64(time.Now().UnixNano())
	}
	cfg, err := params.NewConfig(corpus.Vocab.Size(), base)
	if err != nil {
		return nil, err
	}
	logger.Info("corpus parsed",
		slog.Int("vocab", cfg.VocabSize),
		slog.Int("tokens", len(corpus.IDs)),
		slog.Uint64("seed", cfg.Seed))

	pairs := cbow.GeneratePairs(corpus.IDs, cfg.HalfWindow)
	if len(pairs) == 0 {
		logger.Warn("corpus shorter than one window, nothing to train",
			slog.Int("tokens", len(corpus.IDs)),
			slog.Int("window", cfg.WindowSize()))
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	input, output, err := cbow.CreateMatrices(cfg, src)
	if err != nil {
		return nil, err
	}
	sampler, err := cbow.NewNegativeSampler(corpus.IDs, cfg.RandomSamples, cfg.NegativeFilter, src)
	if err != nil {
		return nil, err
	}

	trainerOpts := []cbow.TrainerOption{cbow.WithLogger(logger)}
	var tlog *IO.TrainingLog
	if opts.LogPath != "" {
		tlog, err = IO.NewTrainingLog(opts.LogPath)
		if err != nil {
			return nil, err
		}
		trainerOpts = append(trainerOpts, cbow.WithProgress(tlog.Record))
	}
	trainer, err := cbow.NewTrainer(cfg, input, output, sampler, trainerOpts...)
	if err != nil {
		if tlog != nil {
			tlog.Close()
		}
		return nil, err
	}

	stats, trainErr := trainer.Train(pairs)
	if tlog != nil {
		if err := tlog.Close(); err != nil && trainErr == nil {
			return nil, fmt.Errorf("error writing training log: %w", err)
		}
	}
	if trainErr != nil {
		return nil, trainErr
	}
	logEmbeddingNorms(logger, input)

	res, err := cbow.Emit(corpus.Vocab, input, IO.JSONWriter{Path: opts.Output})
	if err != nil {
		return nil, err
	}
	logger.Info("embeddings written", slog.String("path", opts.Output), slog.Int("words", len(res)))

	if opts.Model != "" {
		m := &cbow.Model{Config: cfg, Vocab: corpus.Vocab, Input: input, Output: output}
		if err := cbow.SaveModel(m, opts.Model); err != nil {
			return nil, err
		}
		logger.Info("model saved", slog.String("path", opts.Model))
	}
	if opts.VocabOut != "" {
		if err := IO.ExportVocabJSON(opts.VocabOut, corpus.Vocab); err != nil {
			return nil, err
		}
		logger.Info("vocab saved", slog.String("path", opts.VocabOut))
	}

	return &trainReport{
		Config: cfg,
		Corpus: corpus,
		Pairs:  len(pairs),
		Stats:  stats,
		Result: res,
	}, nil
}

func logEmbeddingNorms(logger *slog.Logger, input *cbow.Matrix) {
	d := input.Dense()
	if d == nil {
		return
	}
	norms := utils.RowNorms(input.Data, input.Rows, input.Cols)
	logger.Info("embedding norms",
		slog.Float64("frobenius", mat.Norm(d, 2)),
		slog.Float64("mean_row", floats.Sum(norms)/float64(len(norms))),
		slog.Float64("max_row", floats.Max(norms)))
}
