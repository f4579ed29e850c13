package cbow

// Pair is one CBOW training example: the 2w context ids around a target,
// in their original order.
type Pair struct {
	Context []int
	Target  int
}

// GeneratePairs slides a window of 2*halfWindow+1 ids over corpus and returns
// one Pair per full window, len(corpus)-window+1 in total. A corpus shorter
// than one window yields no pairs.
func GeneratePairs(corpus []int, halfWindow int) []Pair {
	window := halfWindow*2 + 1
	if halfWindow < 0 || len(corpus) < window {
		return []Pair{}
	}

	pairs := make([]Pair, 0, len(corpus)-window+1)
	for start := 0; start+window <= len(corpus); start++ {
		w := corpus[start : start+window]
		context := make([]int, 0, window-1)
		context = append(context, w[:halfWindow]...)
		context = append(context, w[halfWindow+1:]...)
		pairs = append(pairs, Pair{Context: context, Target: w[halfWindow]})
	}
	return pairs
}
