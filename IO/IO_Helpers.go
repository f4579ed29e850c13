package IO

import (
	"fmt"
	"os"
)

// DefaultCorpus is trained on when no input file is given.
const DefaultCorpus = "Today we will be learning about the fundamentals of data science and statistics. " +
	"Data Science and statistics are hot and growing fields with alternative names of machine learning, " +
	"artificial intelligence, big data, etc. I'm really excited to talk to you about data science and " +
	"statistics because data science and statistics have long been a passions of mine. I didn't used to be " +
	"very good at data science and statistics but after studying data science and statistics for a long " +
	"time, I got better and better at it until I became a data science and statistics expert. I'm really " +
	"excited to talk to you about data science and statistics, thanks for listening to me talk about data " +
	"science and statistics."

// ReadCorpusFile returns the whole file as text. An empty path yields
// DefaultCorpus.
func ReadCorpusFile(path string) (string, error) {
	if path == "" {
		return DefaultCorpus, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading corpus %s: %w", path, err)
	}
	return string(b), nil
}
