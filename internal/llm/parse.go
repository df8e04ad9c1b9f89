package llm

import (
	"regexp"
	"strings"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// Every classifier answers in a fixed marker format. The functions below are
// the only place that reads those markers; everything else sees typed values.

const (
	markerPositive = "[판단: 긍정]"
	markerNegative = "[판단: 부정]"
	markerCorrect  = "[판단: 참]"
	markerDrift    = "NEW_TOPIC"

	// DefaultTalkSummary is stored when the single-talk analysis omits its
	// summary marker.
	DefaultTalkSummary = "분석 결과를 요약하는 데 실패했어요."
)

var (
	keywordsRE    = regexp.MustCompile(`\[키워드:\s*([^\]\n]*)\]`)
	summaryRE     = regexp.MustCompile(`(?s)\[요약\]:\s*(.*)`)
	talkSummaryRE = regexp.MustCompile(`\[요약문\]:\s*(.*)`)
	talkKeywordRE = regexp.MustCompile(`\[핵심 단어\]:\s*(.*)`)
	spaceRE       = regexp.MustCompile(`\s+`)
)

// SentimentResult is the parsed output of the sentiment+keyword classifier.
type SentimentResult struct {
	Sentiment domain.Sentiment
	Keywords  []string
}

// ParseSentiment reads "[판단: 긍정|부정]" and "[키워드: a, b]". Anything
// unrecognised yields neutral and an empty keyword list.
func ParseSentiment(raw string) SentimentResult {
	res := SentimentResult{Sentiment: domain.SentimentNeutral, Keywords: []string{}}
	switch {
	case strings.Contains(raw, markerPositive):
		res.Sentiment = domain.SentimentPositive
	case strings.Contains(raw, markerNegative):
		res.Sentiment = domain.SentimentNegative
	}
	if m := keywordsRE.FindStringSubmatch(raw); m != nil {
		seen := make(map[string]struct{})
		for _, k := range strings.Split(m[1], ",") {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			res.Keywords = append(res.Keywords, k)
		}
	}
	return res
}

// ParseDrift reports whether the drift classifier emitted its sentinel.
func ParseDrift(raw string) bool {
	return strings.Contains(raw, markerDrift)
}

// ParseGrade reports whether the grader judged the answer correct.
func ParseGrade(raw string) bool {
	return strings.Contains(raw, markerCorrect)
}

// ParseSummary returns the text after "[요약]:" or the whole trimmed output
// when the marker is missing.
func ParseSummary(raw string) string {
	if m := summaryRE.FindStringSubmatch(raw); m != nil {
		return collapse(m[1])
	}
	return collapse(raw)
}

// TalkAnalysis is the parsed single-talk analysis.
type TalkAnalysis struct {
	Summary string
	Keyword *string
}

// ParseTalkAnalysis reads the "[요약문]:" and "[핵심 단어]:" lines. A missing
// summary becomes DefaultTalkSummary; a missing or empty keyword is nil.
func ParseTalkAnalysis(raw string) TalkAnalysis {
	out := TalkAnalysis{Summary: DefaultTalkSummary}
	if m := talkSummaryRE.FindStringSubmatch(raw); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			out.Summary = s
		}
	}
	if m := talkKeywordRE.FindStringSubmatch(raw); m != nil {
		if k := strings.Trim(strings.TrimSpace(m[1]), `"'`); k != "" {
			out.Keyword = &k
		}
	}
	return out
}

func collapse(s string) string {
	return spaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}
