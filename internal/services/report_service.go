// Package services – ReportService
//
// This file implements the read-side reports over persisted analyses:
// daily keyword and sentiment shares, the previous full week's aggregates
// with a cached narrative, and a per-day status calendar for a month.
// Day and week boundaries are computed in the service's Location.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/repo"
)

const (
	dateLayout  = "2006-01-02"
	topKeywords = 5
)

// Narrator writes the weekly narrative from aggregates.
type Narrator interface {
	WeeklyNarrative(ctx context.Context, in llm.NarrativeInput) (string, error)
}

// ReportService computes daily, weekly and monthly reports.
type ReportService struct {
	DB       *gorm.DB
	LLM      Narrator
	Location *time.Location
	Now      func() time.Time
}

// NewReportService wires a ReportService.
func NewReportService(db *gorm.DB, n Narrator, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{DB: db, LLM: n, Location: loc, Now: time.Now}
}

// DailyReport is the sentiment breakdown of one day.
type DailyReport struct {
	Date             string   `json:"date"`
	Total            int      `json:"total"`
	PositiveKeywords []string `json:"positive_keywords"`
	NegativeKeywords []string `json:"negative_keywords"`
	PositivePercent  int      `json:"positive_percent"`
	NegativePercent  int      `json:"negative_percent"`
}

// Daily reports on the analyses of profileID on date's calendar day. A zero
// date means today.
func (s *ReportService) Daily(ctx context.Context, profileID int64, date time.Time) (*DailyReport, error) {
	if date.IsZero() {
		date = s.Now()
	}
	from, to := dayBounds(date, s.Location)

	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Daily",
		trace.WithAttributes(
			attribute.Int64("profile.id", profileID),
			attribute.String("report.date", from.Format(dateLayout)),
		),
	)
	defer span.End()

	rows, err := repo.ListAnalysesBetween(ctx, s.DB, profileID, from, to)
	if err != nil {
		return nil, err
	}

	out := &DailyReport{
		Date:             from.Format(dateLayout),
		Total:            len(rows),
		PositiveKeywords: []string{},
		NegativeKeywords: []string{},
	}
	for _, a := range rows {
		if a.Keyword == nil || *a.Keyword == "" {
			continue
		}
		if a.IsPositive {
			out.PositiveKeywords = append(out.PositiveKeywords, *a.Keyword)
		} else {
			out.NegativeKeywords = append(out.NegativeKeywords, *a.Keyword)
		}
	}
	// Shares are over keywords, so rows without one do not count.
	pos, neg := len(out.PositiveKeywords), len(out.NegativeKeywords)
	out.PositivePercent, out.NegativePercent = splitPercent(pos, pos+neg)
	return out, nil
}

// splitPercent returns the positive and negative shares of total. The
// positive side is rounded and the negative side takes the remainder, so
// the pair sums to 100 whenever total > 0.
func splitPercent(positive, total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	p := int(math.Round(float64(positive) / float64(total) * 100))
	return p, 100 - p
}

// KeywordCount is a keyword and how often it occurred.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// WeekdayStat is the sentiment split of one weekday.
type WeekdayStat struct {
	Weekday         string `json:"weekday"`
	Positive        int    `json:"positive"`
	Negative        int    `json:"negative"`
	PositivePercent int    `json:"positive_percent"`
	NegativePercent int    `json:"negative_percent"`
}

// TimeSlotCount counts analyses in a part of the day.
type TimeSlotCount struct {
	Slot  string `json:"slot"`
	Count int    `json:"count"`
}

// WeeklySummary aggregates the previous full week (Monday to Sunday).
type WeeklySummary struct {
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Total            int             `json:"total"`
	PositiveKeywords []KeywordCount  `json:"positive_keywords"`
	NegativeKeywords []KeywordCount  `json:"negative_keywords"`
	Weekdays         []WeekdayStat   `json:"weekdays"`
	TimeOfDay        []TimeSlotCount `json:"time_of_day"`

	start, end time.Time
}

// previousWeek returns [Monday 00:00, next Monday 00:00) of the week before
// the one containing now.
func previousWeek(now time.Time, loc *time.Location) (time.Time, time.Time) {
	today, _ := dayBounds(now, loc)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	thisMonday := today.AddDate(0, 0, -sinceMonday)
	return thisMonday.AddDate(0, 0, -7), thisMonday
}

var weekdayNames = [...]string{"월", "화", "수", "목", "금", "토", "일"}

// Time-of-day slots.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
	SlotNight     = "night"
)

func timeSlot(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return SlotMorning
	case h >= 12 && h < 18:
		return SlotAfternoon
	case h >= 18 && h < 22:
		return SlotEvening
	default:
		return SlotNight
	}
}

// Weekly aggregates the previous full week relative to now. It returns
// ErrNoRecords when the week has no analyses.
func (s *ReportService) Weekly(ctx context.Context, profileID int64) (*WeeklySummary, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Weekly",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	start, end := previousWeek(s.Now(), s.Location)
	rows, err := repo.ListAnalysesBetween(ctx, s.DB, profileID, start, end)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}
	return aggregateWeek(rows, start, end, s.Location), nil
}

func aggregateWeek(rows []domain.Analysis, start, end time.Time, loc *time.Location) *WeeklySummary {
	out := &WeeklySummary{
		StartDate: start.Format(dateLayout),
		EndDate:   end.AddDate(0, 0, -1).Format(dateLayout),
		Total:     len(rows),
		start:     start,
		end:       end,
	}

	var days [7]WeekdayStat
	slots := map[string]int{}
	var posKW, negKW keywordCounter
	for _, a := range rows {
		at := a.CreatedAt.In(loc)
		d := &days[(int(at.Weekday())+6)%7]
		if a.IsPositive {
			d.Positive++
		} else {
			d.Negative++
		}
		slots[timeSlot(at)]++
		if a.Keyword != nil && *a.Keyword != "" {
			if a.IsPositive {
				posKW.add(*a.Keyword)
			} else {
				negKW.add(*a.Keyword)
			}
		}
	}

	for i := range days {
		days[i].Weekday = weekdayNames[i]
		days[i].PositivePercent, days[i].NegativePercent = splitPercent(days[i].Positive, days[i].Positive+days[i].Negative)
	}
	out.Weekdays = days[:]
	for _, slot := range []string{SlotMorning, SlotAfternoon, SlotEvening, SlotNight} {
		out.TimeOfDay = append(out.TimeOfDay, TimeSlotCount{Slot: slot, Count: slots[slot]})
	}
	out.PositiveKeywords = posKW.top(topKeywords)
	out.NegativeKeywords = negKW.top(topKeywords)
	return out
}

// keywordCounter counts keywords and remembers first-seen order.
type keywordCounter struct {
	order  []string
	counts map[string]int
}

func (k *keywordCounter) add(kw string) {
	if k.counts == nil {
		k.counts = map[string]int{}
	}
	if _, seen := k.counts[kw]; !seen {
		k.order = append(k.order, kw)
	}
	k.counts[kw]++
}

// top returns up to n keywords by descending count, ties in first-seen order.
func (k *keywordCounter) top(n int) []KeywordCount {
	out := make([]KeywordCount, 0, len(k.order))
	for _, kw := range k.order {
		out = append(out, KeywordCount{Keyword: kw, Count: k.counts[kw]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// WeeklyReport returns the cached narrative for the previous full week,
// generating and storing it on first request. Concurrent first requests may
// both generate; the loser reads the winner's row.
func (s *ReportService) WeeklyReport(ctx context.Context, profileID int64) (*domain.WeeklyReport, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "WeeklyReport",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	start, _ := previousWeek(s.Now(), s.Location)
	if cached, err := repo.GetWeeklyReport(ctx, s.DB, profileID, start); err == nil {
		span.SetAttributes(attribute.Bool("report.cached", true))
		return cached, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	sum, err := s.Weekly(ctx, profileID)
	if err != nil {
		return nil, err
	}
	text, err := s.LLM.WeeklyNarrative(ctx, narrativeInput(sum))
	if err != nil {
		log.Error().Err(err).Int64("profile_id", profileID).Msg("weekly narrative failed")
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	rep, err := repo.CreateWeeklyReport(ctx, s.DB, profileID, sum.start, sum.end.AddDate(0, 0, -1), text)
	if errors.Is(err, repo.ErrDuplicate) {
		return repo.GetWeeklyReport(ctx, s.DB, profileID, start)
	}
	return rep, err
}

func narrativeInput(sum *WeeklySummary) llm.NarrativeInput {
	kws := func(in []KeywordCount) []string {
		out := make([]string, 0, len(in))
		for _, k := range in {
			out = append(out, fmt.Sprintf("%s(%d)", k.Keyword, k.Count))
		}
		return out
	}
	var wd, tod []string
	for _, d := range sum.Weekdays {
		if d.Positive+d.Negative == 0 {
			continue
		}
		wd = append(wd, fmt.Sprintf("%s 긍정 %d%%/부정 %d%%", d.Weekday, d.PositivePercent, d.NegativePercent))
	}
	for _, t := range sum.TimeOfDay {
		tod = append(tod, fmt.Sprintf("%s %d회", t.Slot, t.Count))
	}
	return llm.NarrativeInput{
		Start:            sum.StartDate,
		End:              sum.EndDate,
		PositiveKeywords: kws(sum.PositiveKeywords),
		NegativeKeywords: kws(sum.NegativeKeywords),
		WeekdaySummary:   strings.Join(wd, ", "),
		TimeOfDaySummary: strings.Join(tod, ", "),
	}
}

// Day statuses of the monthly calendar.
const (
	DayPositive = "positive"
	DayNegative = "negative"
	DayNeutral  = "neutral"
	DayNone     = "none"
)

// DayStatus classifies one calendar day.
type DayStatus struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

// MonthlyReport is the per-day calendar of one month.
type MonthlyReport struct {
	Year            int         `json:"year"`
	Month           int         `json:"month"`
	Total           int         `json:"total"`
	PositivePercent int         `json:"positive_percent"`
	Days            []DayStatus `json:"days"`
}

func dayStatus(pos, neg int) string {
	switch {
	case pos == 0 && neg == 0:
		return DayNone
	case pos > neg:
		return DayPositive
	case neg > pos:
		return DayNegative
	default:
		return DayNeutral
	}
}

// Monthly classifies every day of year/month and the month's overall
// positive share.
func (s *ReportService) Monthly(ctx context.Context, profileID int64, year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Monthly",
		trace.WithAttributes(
			attribute.Int64("profile.id", profileID),
			attribute.Int("report.year", year),
			attribute.Int("report.month", month),
		),
	)
	defer span.End()

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.Location)
	to := from.AddDate(0, 1, 0)
	rows, err := repo.ListAnalysesBetween(ctx, s.DB, profileID, from, to)
	if err != nil {
		return nil, err
	}

	days := to.AddDate(0, 0, -1).Day()
	pos := make([]int, days)
	neg := make([]int, days)
	totalPos := 0
	for _, a := range rows {
		i := a.CreatedAt.In(s.Location).Day() - 1
		if a.IsPositive {
			pos[i]++
			totalPos++
		} else {
			neg[i]++
		}
	}

	out := &MonthlyReport{Year: year, Month: month, Total: len(rows), Days: make([]DayStatus, 0, days)}
	out.PositivePercent, _ = splitPercent(totalPos, len(rows))
	for i := 0; i < days; i++ {
		out.Days = append(out.Days, DayStatus{
			Date:     from.AddDate(0, 0, i).Format(dateLayout),
			Status:   dayStatus(pos[i], neg[i]),
			Positive: pos[i],
			Negative: neg[i],
		})
	}
	return out, nil
}
