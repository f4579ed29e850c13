package params

// Vocabulary maps tokens to dense ids in order of first occurrence.
type Vocabulary struct {
	TokenToID map[string]int
	IDToToken []string
}

func NewVocabulary() Vocabulary {
	return Vocabulary{TokenToID: map[string]int{}}
}

// Add returns the id of tok, assigning the next free id if tok is new.
func (v *Vocabulary) Add(tok string) int {
	if id, ok := v.TokenToID[tok]; ok {
		return id
	}
	if v.TokenToID == nil {
		v.TokenToID = map[string]int{}
	}
	id := len(v.IDToToken)
	v.TokenToID[tok] = id
	v.IDToToken = append(v.IDToToken, tok)
	return id
}

// Lookup returns the id of tok and whether it is known.
func (v Vocabulary) Lookup(tok string) (int, bool) {
	id, ok := v.TokenToID[tok]
	return id, ok
}

func (v Vocabulary) Size() int {
	return len(v.IDToToken)
}

// Corpus is the encoded token stream together with the vocabulary that
// produced it. IDs holds one id per retained token, repeats included.
type Corpus struct {
	Vocab Vocabulary
	IDs   []int
}
