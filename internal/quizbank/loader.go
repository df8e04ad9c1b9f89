package quizbank

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const blockSeparator = "#---"

// LoadBlocks reads a block file from path.
func LoadBlocks(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseBlocks(f)
}

// ParseBlocks reads "#---" separated records. Records missing any of the
// four fields are skipped.
func ParseBlocks(r io.Reader) (*Bank, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		out []Question
		cur Question
	)
	flush := func() {
		if cur.Topic != "" && cur.Prompt != "" && cur.Answer != "" && cur.Hint != "" {
			out = append(out, cur)
		}
		cur = Question{}
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, blockSeparator) {
			flush()
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "주제":
			cur.Topic = val
		case "질문":
			cur.Prompt = val
		case "정답":
			cur.Answer = val
		case "힌트":
			cur.Hint = val
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return New(out), nil
}

// LoadWords reads a word file from path.
func LoadWords(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWords(f)
}

// ParseWords reads "word,hint" lines into the WordsKey pool. Blank lines
// are ignored; a non-blank line without a comma is an error.
func ParseWords(r io.Reader) (*Bank, error) {
	sc := bufio.NewScanner(r)
	var out []Question
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		word, hint, ok := strings.Cut(line, ",")
		word, hint = strings.TrimSpace(word), strings.TrimSpace(hint)
		if !ok || word == "" {
			return nil, fmt.Errorf("quizbank: line %d: want \"word,hint\"", n)
		}
		out = append(out, Question{Topic: WordsKey, Answer: word, Hint: hint})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(out), nil
}
