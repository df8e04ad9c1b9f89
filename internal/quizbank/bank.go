// Package quizbank holds the question pools used by the quiz activities.
// Pools are loaded once at startup and are read-only afterwards, so a Bank
// is safe for concurrent use.
//
// Two file formats are supported:
//
//   - Block files: records separated by "#---", each with "주제:", "질문:",
//     "정답:" and "힌트:" lines. The 주제 value is the pool key (a safety
//     topic or an animal name).
//   - Word files: one "word,hint" record per line, all in a single pool.
package quizbank

import (
	"errors"
	"math/rand/v2"
	"sort"
)

// WordsKey is the pool key of every record loaded from a word file.
const WordsKey = ""

// ErrInsufficientQuestions is returned by Sample when a pool holds fewer
// questions than requested.
var ErrInsufficientQuestions = errors.New("quizbank: not enough questions in pool")

// Question is one quiz item. Prompt is empty for word records; the caller
// derives what to show from Answer and Hint.
type Question struct {
	Topic  string `json:"topic"`
	Prompt string `json:"question"`
	Answer string `json:"answer"`
	Hint   string `json:"hint"`
}

// Bank is an immutable set of question pools keyed by topic.
type Bank struct {
	pools map[string][]Question
}

// New builds a Bank from questions, grouping by Topic in input order.
func New(qs []Question) *Bank {
	b := &Bank{pools: make(map[string][]Question)}
	for _, q := range qs {
		b.pools[q.Topic] = append(b.pools[q.Topic], q)
	}
	return b
}

// Pool returns a copy of the questions registered under key.
func (b *Bank) Pool(key string) []Question {
	if b == nil {
		return nil
	}
	return append([]Question(nil), b.pools[key]...)
}

// Keys returns the pool keys in sorted order.
func (b *Bank) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.pools))
	for k := range b.pools {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len is the total number of questions across all pools.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, p := range b.pools {
		n += len(p)
	}
	return n
}

// Sample picks n distinct questions from the pool under key in random
// order. rng may be nil, in which case the global source is used.
func (b *Bank) Sample(key string, n int, rng *rand.Rand) ([]Question, error) {
	pool := b.Pool(key)
	if n <= 0 || len(pool) < n {
		return nil, ErrInsufficientQuestions
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n], nil
}
