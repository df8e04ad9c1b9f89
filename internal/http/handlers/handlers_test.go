package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/services"
)

// ---------- fakes ----------

type fakeActivity struct {
	mu   sync.Mutex
	reqs []services.TalkRequest
	res  services.Result
	// hold, when set, blocks Talk until closed.
	hold    chan struct{}
	active  int32
	maxSeen int32
}

func (f *fakeActivity) Talk(_ context.Context, req services.TalkRequest) services.Result {
	n := atomic.AddInt32(&f.active, 1)
	for {
		m := atomic.LoadInt32(&f.maxSeen)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxSeen, m, n) {
			break
		}
	}
	if f.hold != nil {
		<-f.hold
	}
	atomic.AddInt32(&f.active, -1)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.res
}

type fakeStarter struct {
	got services.StartRoleplayRequest
	res services.Result
}

func (f *fakeStarter) Start(_ context.Context, req services.StartRoleplayRequest) services.Result {
	f.got = req
	return f.res
}

type fakeSink struct {
	mu   sync.Mutex
	recs []services.TurnRecord
	full bool
}

func (f *fakeSink) Submit(rec services.TurnRecord) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.recs = append(f.recs, rec)
	return true
}

type fakeRooms struct {
	closedSID   string
	closedInput string
	closeErr    error
	rooms       []domain.Chatroom
	talks       []domain.Talk
	err         error
	today       bool
}

func (f *fakeRooms) Close(_ context.Context, sid, input string) error {
	f.closedSID, f.closedInput = sid, input
	return f.closeErr
}
func (f *fakeRooms) ListByProfile(context.Context, int64) ([]domain.Chatroom, error) {
	return f.rooms, f.err
}
func (f *fakeRooms) Talks(context.Context, string) ([]domain.Talk, error) { return f.talks, f.err }
func (f *fakeRooms) CreatedToday(context.Context, int64) (bool, error)    { return f.today, f.err }

type fakeReports struct {
	gotDate         time.Time
	gotYear, gotMon int
	daily           *services.DailyReport
	weekly          *services.WeeklySummary
	narrative       *domain.WeeklyReport
	monthly         *services.MonthlyReport
	err             error
}

func (f *fakeReports) Daily(_ context.Context, _ int64, d time.Time) (*services.DailyReport, error) {
	f.gotDate = d
	return f.daily, f.err
}
func (f *fakeReports) Weekly(context.Context, int64) (*services.WeeklySummary, error) {
	return f.weekly, f.err
}
func (f *fakeReports) WeeklyReport(context.Context, int64) (*domain.WeeklyReport, error) {
	return f.narrative, f.err
}
func (f *fakeReports) Monthly(_ context.Context, _ int64, y, m int) (*services.MonthlyReport, error) {
	f.gotYear, f.gotMon = y, m
	if m < 1 || m > 12 {
		return nil, services.ErrInvalidMonth
	}
	return f.monthly, f.err
}

type fakeHistory struct {
	negative []repo.NegativeTalk
	insights []services.NegativeInsight
	summary  map[string][]services.SentimentEntry
	err      error
}

func (f *fakeHistory) NegativeTalks(context.Context, int64) ([]repo.NegativeTalk, error) {
	return f.negative, f.err
}
func (f *fakeHistory) NegativeInsights(context.Context, int64) ([]services.NegativeInsight, error) {
	return f.insights, f.err
}
func (f *fakeHistory) SentimentSummary(context.Context, int64) (map[string][]services.SentimentEntry, error) {
	return f.summary, f.err
}

type fakeAdvice struct {
	text string
	err  error
}

func (f fakeAdvice) Today(context.Context, int64) (string, error) { return f.text, f.err }

type fakeFeedback struct {
	talkID string
	like   *bool
	err    error
}

func (f *fakeFeedback) SetLike(_ context.Context, id string, like bool) error {
	f.talkID, f.like = id, &like
	return f.err
}

// ---------- harness ----------

type harness struct {
	h        *Handlers
	r        *gin.Engine
	conv     *fakeActivity
	quiz     *fakeActivity
	roleplay *fakeActivity
	starter  *fakeStarter
	sink     *fakeSink
	rooms    *fakeRooms
	reports  *fakeReports
	history  *fakeHistory
	feedback *fakeFeedback
	advice   *fakeAdvice
}

var testNow = time.Date(2025, 7, 16, 10, 0, 0, 0, time.UTC)

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hs := &harness{
		conv:     &fakeActivity{},
		quiz:     &fakeActivity{},
		roleplay: &fakeActivity{},
		starter:  &fakeStarter{},
		sink:     &fakeSink{},
		rooms:    &fakeRooms{},
		reports:  &fakeReports{},
		history:  &fakeHistory{},
		feedback: &fakeFeedback{},
		advice:   &fakeAdvice{},
	}
	hs.h = New(Deps{
		Conversation:  hs.conv,
		TopicQuiz:     hs.quiz,
		SyllableQuiz:  hs.quiz,
		AnimalQuiz:    hs.quiz,
		Roleplay:      hs.roleplay,
		RoleplayStart: hs.starter,
		Rooms:         hs.rooms,
		Sink:          hs.sink,
		Reports:       hs.reports,
		History:       hs.history,
		Advice:        hs.advice,
		Feedback:      hs.feedback,
		Now:           func() time.Time { return testNow },
	})

	r := gin.New()
	h := hs.h
	r.POST("/conversation/talk", h.ConversationTalk)
	r.POST("/quiz/talk", h.TopicQuizTalk)
	r.POST("/roleplay/start", h.StartRoleplay)
	r.POST("/roleplay/talk", h.RoleplayTalk)
	r.POST("/conversation/end", h.EndConversation)
	r.POST("/relationship-advice", h.RelationshipAdvice)
	r.GET("/reports/daily/:profile_id", h.DailyReport)
	r.GET("/reports/weekly/:profile_id", h.WeeklyReport)
	r.GET("/reports/weekly/:profile_id/narrative", h.WeeklyNarrative)
	r.GET("/reports/monthly/:profile_id", h.MonthlyReport)
	r.GET("/history/chatrooms/:profile_id", h.ListChatrooms)
	r.GET("/history/talks/:chatroom_id", h.ListTalks)
	r.GET("/history/negative-talks/:profile_id", h.NegativeTalks)
	r.GET("/analysis/sentiment-summary/:profile_id", h.SentimentSummary)
	r.GET("/chatrooms/check-today/:profile_id", h.CheckToday)
	r.PUT("/talks/:id/feedback", h.SetFeedback)
	hs.r = r
	return hs
}

func (hs *harness) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	hs.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

// ---------- session locks ----------

func TestSessionLocks_SerializeSameSessionAndCleanUp(t *testing.T) {
	hs := newHarness(t)
	hs.conv.hold = make(chan struct{})
	hs.conv.res = services.Result{Reply: "응", Status: services.StatusContinue}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hs.do(http.MethodPost, "/conversation/talk", TalkRequest{SessionID: "s1", ProfileID: 1, Input: "안녕"})
		}()
	}
	// Release the turns one by one.
	for i := 0; i < 3; i++ {
		hs.conv.hold <- struct{}{}
	}
	wg.Wait()

	if got := atomic.LoadInt32(&hs.conv.maxSeen); got != 1 {
		t.Fatalf("max concurrent turns for one session = %d, want 1", got)
	}
	if n := hs.h.locks.Len(); n != 0 {
		t.Fatalf("lock entries left: %d", n)
	}
}
