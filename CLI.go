package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/manningwu07/CBOW/IO"
	"github.com/manningwu07/CBOW/cbow"
	"github.com/manningwu07/CBOW/params"
)

var rootCmd = &cobra.Command{
	Use:   "cbow",
	Short: "Train CBOW word embeddings with negative sampling",
	Long: `cbow learns one embedding vector per word of a plain-text corpus using the
continuous bag-of-words model with negative sampling, and writes the vectors
to a JSON file.`,
	SilenceUsage: true,
}

var verbose bool

// train flags
var (
	trainInput       string
	trainConfigPath  string
	trainOutput      string
	trainModel       string
	trainVocab       string
	trainLog         string
	trainStopWords   string
	trainNoStopWords bool

	flagDim            int
	flagSamples        int
	flagWindow         int
	flagLR             float64
	flagEpochs         int
	flagMean           float64
	flagStdDev         float64
	flagSeed           uint64
	flagAggregation    string
	flagNegativeFilter string
)

// nearest flags
var (
	nearestWord       string
	nearestK          int
	nearestModel      string
	nearestEmbeddings string
)

// vocab flags
var (
	vocabInput       string
	vocabOut         string
	vocabStopWords   string
	vocabNoStopWords bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train embeddings on a corpus",
	Long: `Train embeddings on a plain-text corpus (the built-in sample text when --input
is not given). Settings come from the defaults, then --config, then any flag
given explicitly on the command line.

Examples:
  cbow train
  cbow train --input corpus.txt --epochs 300 --dim 50
  cbow train --config cbow.yaml --model model.gob --log training.csv`,
	RunE: runTrainCmd,
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "List the words closest to a word",
	Long: `Rank the other words of a trained model (or an exported result.json) by
cosine similarity to --word.`,
	RunE: runNearestCmd,
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Tokenize a corpus and export its vocabulary",
	RunE:  runVocabCmd,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every epoch")

	defaults := params.DefaultConfig()
	f := trainCmd.Flags()
	f.StringVarP(&trainInput, "input", "i", "", "Plain-text corpus (default: built-in sample)")
	f.StringVarP(&trainConfigPath, "config", "c", "", "YAML training config")
	f.StringVarP(&trainOutput, "output", "o", "result.json", "Embeddings output file")
	f.StringVar(&trainModel, "model", "", "Also save a gob model checkpoint here")
	f.StringVar(&trainVocab, "vocab", "", "Also export the vocabulary here")
	f.StringVar(&trainLog, "log", "", "Write per-epoch statistics as CSV here")
	f.StringVar(&trainStopWords, "stop-words", "", "Stop-word file, one word per line (default: English list)")
	f.BoolVar(&trainNoStopWords, "no-stop-words", false, "Keep every token")

	f.IntVar(&flagDim, "dim", defaults.EmbeddingsDimension, "Embedding dimension")
	f.IntVar(&flagSamples, "samples", defaults.RandomSamples, "Corpus positions drawn per step for negatives")
	f.IntVar(&flagWindow, "window", defaults.HalfWindow, "Context words on each side of the target")
	f.Float64Var(&flagLR, "lr", defaults.LearningRate, "Learning rate")
	f.IntVar(&flagEpochs, "epochs", defaults.Epochs, "Passes over the training pairs")
	f.Float64Var(&flagMean, "mean", defaults.Mean, "Mean of the initial input weights")
	f.Float64Var(&flagStdDev, "std-dev", defaults.StdDev, "Standard deviation of the initial input weights")
	f.Uint64Var(&flagSeed, "seed", defaults.Seed, "Random seed (0: from the clock)")
	f.StringVar(&flagAggregation, "aggregation", defaults.Aggregation, "Context aggregation: sum or mean")
	f.StringVar(&flagNegativeFilter, "negative-filter", defaults.NegativeFilter, "exclude_target or keep_target")

	nf := nearestCmd.Flags()
	nf.StringVarP(&nearestWord, "word", "w", "", "Query word")
	nf.IntVarP(&nearestK, "k", "k", 10, "Number of neighbours")
	nf.StringVar(&nearestModel, "model", "", "Gob model checkpoint")
	nf.StringVar(&nearestEmbeddings, "embeddings", "", "Embeddings JSON written by train")
	_ = nearestCmd.MarkFlagRequired("word")
	nearestCmd.MarkFlagsMutuallyExclusive("model", "embeddings")
	nearestCmd.MarkFlagsOneRequired("model", "embeddings")

	vf := vocabCmd.Flags()
	vf.StringVarP(&vocabInput, "input", "i", "", "Plain-text corpus (default: built-in sample)")
	vf.StringVarP(&vocabOut, "out", "o", "vocab.json", "Vocabulary output file")
	vf.StringVar(&vocabStopWords, "stop-words", "", "Stop-word file, one word per line (default: English list)")
	vf.BoolVar(&vocabNoStopWords, "no-stop-words", false, "Keep every token")

	rootCmd.AddCommand(trainCmd, nearestCmd, vocabCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers defaults, the optional YAML file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, path string) (params.TrainingConfig, error) {
	cfg := params.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = params.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	f := cmd.Flags()
	if f.Changed("dim") {
		cfg.EmbeddingsDimension = flagDim
	}
	if f.Changed("samples") {
		cfg.RandomSamples = flagSamples
	}
	if f.Changed("window") {
		cfg.HalfWindow = flagWindow
	}
	if f.Changed("lr") {
		cfg.LearningRate = flagLR
	}
	if f.Changed("epochs") {
		cfg.Epochs = flagEpochs
	}
	if f.Changed("mean") {
		cfg.Mean = flagMean
	}
	if f.Changed("std-dev") {
		cfg.StdDev = flagStdDev
	}
	if f.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if f.Changed("aggregation") {
		cfg.Aggregation = flagAggregation
	}
	if f.Changed("negative-filter") {
		cfg.NegativeFilter = flagNegativeFilter
	}
	return cfg, nil
}

func runTrainCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, trainConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	report, err := runTraining(trainOptions{
		Input:         trainInput,
		StopWordsPath: trainStopWords,
		NoStopWords:   trainNoStopWords,
		Output:        trainOutput,
		Model:         trainModel,
		VocabOut:      trainVocab,
		LogPath:       trainLog,
		Base:          cfg,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "trained %d words over %d pairs x %d epochs, final loss %.4f -> %s\n",
		report.Config.VocabSize, report.Pairs, report.Stats.Epochs, report.Stats.FinalLoss, trainOutput)
	return nil
}

func runNearestCmd(cmd *cobra.Command, args []string) error {
	var (
		neighbours []cbow.Neighbor
		err        error
	)
	switch {
	case nearestModel != "":
		var m *cbow.Model
		if m, err = cbow.LoadModel(nearestModel); err != nil {
			return err
		}
		neighbours, err = m.Nearest(nearestWord, nearestK)
	case nearestEmbeddings != "":
		var res cbow.Result
		if res, err = IO.LoadEmbeddingsJSON(nearestEmbeddings); err != nil {
			return err
		}
		neighbours, err = cbow.Nearest(res, nearestWord, nearestK)
	default:
		return errors.New("one of --model or --embeddings is required")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, n := range neighbours {
		fmt.Fprintf(out, "%3d  %-24s %.4f\n", i+1, n.Word, n.Similarity)
	}
	return nil
}

func runVocabCmd(cmd *cobra.Command, args []string) error {
	raw, err := IO.ReadCorpusFile(vocabInput)
	if err != nil {
		return err
	}
	stop, err := loadStopWords(vocabStopWords, vocabNoStopWords)
	if err != nil {
		return err
	}
	corpus := IO.ParseCorpus(raw, stop)
	if err := IO.ExportVocabJSON(vocabOut, corpus.Vocab); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d words, %d tokens -> %s\n", corpus.Vocab.Size(), len(corpus.IDs), vocabOut)
	return nil
}
