// Package services – AnalysisPipeline
//
// This file implements the post-turn analysis pipeline. Finished turns are
// queued without blocking the reply path and processed by a fixed pool of
// workers: classify the child's utterance, persist the user and bot talks,
// and for clearly positive or negative utterances with keywords run a
// deeper single-talk analysis. Delivery is best effort; a full queue drops
// the job and a crash loses whatever was still queued.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/repo"
)

// TalkClassifier is the part of the language model gateway the pipeline
// uses.
type TalkClassifier interface {
	SentimentKeywords(ctx context.Context, text string) (llm.SentimentResult, error)
	AnalyzeTalk(ctx context.Context, text string, positive bool) (llm.TalkAnalysis, error)
}

// AnalysisPipeline persists and analyzes finished turns in the background.
type AnalysisPipeline struct {
	DB  *gorm.DB
	LLM TalkClassifier

	workers int
	jobs    chan TurnRecord
	wg      sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewAnalysisPipeline builds a pipeline with the given worker count and
// queue capacity. Call Start to launch the workers.
func NewAnalysisPipeline(db *gorm.DB, c TalkClassifier, workers, queueSize int) *AnalysisPipeline {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &AnalysisPipeline{DB: db, LLM: c, workers: workers, jobs: make(chan TurnRecord, queueSize)}
}

// Start launches the workers. Calling it more than once is a no-op.
func (p *AnalysisPipeline) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
	log.Info().Int("workers", p.workers).Int("queue_size", cap(p.jobs)).Msg("analysis pipeline started")
}

// Submit queues rec without blocking. It returns false when the queue is
// full or the pipeline is closed; the job is then dropped.
func (p *AnalysisPipeline) Submit(rec TurnRecord) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		analysisJobs.WithLabelValues("dropped").Inc()
		return false
	}
	select {
	case p.jobs <- rec:
		analysisQueueDepth.Inc()
		return true
	default:
		analysisJobs.WithLabelValues("dropped").Inc()
		log.Warn().Str("session_id", rec.SessionID).Str("chatroom_id", rec.ChatroomID).Msg("analysis queue full; turn dropped")
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *AnalysisPipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	started := p.started
	p.mu.Unlock()

	if !started {
		// Nobody will read the queue; drain it here.
		for rec := range p.jobs {
			analysisQueueDepth.Dec()
			p.run(rec)
		}
		return
	}
	p.wg.Wait()
}

func (p *AnalysisPipeline) work(id int) {
	defer p.wg.Done()
	for rec := range p.jobs {
		analysisQueueDepth.Dec()
		p.run(rec)
	}
	log.Debug().Int("worker", id).Msg("analysis worker stopped")
}

func (p *AnalysisPipeline) run(rec TurnRecord) {
	defer func() {
		if r := recover(); r != nil {
			analysisJobs.WithLabelValues("panic").Inc()
			log.Error().Interface("panic", r).Str("session_id", rec.SessionID).Msg("analysis job panicked")
		}
	}()
	_, _ = p.Process(context.Background(), rec)
}

// Process runs the pipeline for one turn synchronously. It returns the
// saved user talk, or the error that prevented saving the talks. Failures
// of the deeper analysis are logged and never affect saved talks.
func (p *AnalysisPipeline) Process(ctx context.Context, rec TurnRecord) (*domain.Talk, error) {
	tr := otel.Tracer("services/AnalysisPipeline")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(
			attribute.String("session.id", rec.SessionID),
			attribute.String("chatroom.id", rec.ChatroomID),
		),
	)
	defer span.End()

	// 1) Classify. Errors fall back to neutral with no keywords.
	cls, err := p.LLM.SentimentKeywords(ctx, rec.UserText)
	if err != nil {
		log.Warn().Err(err).Str("session_id", rec.SessionID).Msg("sentiment classification failed")
	}
	span.SetAttributes(attribute.String("talk.sentiment", string(cls.Sentiment)))

	// 2) Persist the user and bot talks together.
	var userTalk *domain.Talk
	err = p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := repo.CreateTalk(ctx, tx, repo.NewTalk{
			ChatroomID: rec.ChatroomID,
			ProfileID:  rec.ProfileID,
			SessionID:  rec.SessionID,
			Category:   rec.Category,
			Role:       domain.RoleUser,
			Content:    rec.UserText,
			Sentiment:  cls.Sentiment,
			Keywords:   cls.Keywords,
		})
		if err != nil {
			return err
		}
		if _, err := repo.CreateTalk(ctx, tx, repo.NewTalk{
			ChatroomID: rec.ChatroomID,
			ProfileID:  rec.ProfileID,
			SessionID:  rec.SessionID,
			Category:   rec.Category,
			Role:       domain.RoleBot,
			Content:    rec.BotText,
		}); err != nil {
			return err
		}
		userTalk = t
		return nil
	})
	if err != nil {
		analysisJobs.WithLabelValues("save_failed").Inc()
		log.Error().Err(err).Str("session_id", rec.SessionID).Str("chatroom_id", rec.ChatroomID).Msg("save talks failed")
		span.RecordError(err)
		return nil, err
	}

	// 3) Deeper analysis only for clear sentiment with keywords.
	if cls.Sentiment == domain.SentimentNeutral || len(cls.Keywords) == 0 || userTalk.ID == "" {
		analysisJobs.WithLabelValues("saved").Inc()
		return userTalk, nil
	}
	p.analyze(ctx, userTalk, cls.Sentiment == domain.SentimentPositive)
	return userTalk, nil
}

func (p *AnalysisPipeline) analyze(ctx context.Context, t *domain.Talk, positive bool) {
	res, err := p.LLM.AnalyzeTalk(ctx, t.Content, positive)
	if err != nil {
		analysisJobs.WithLabelValues("analysis_failed").Inc()
		log.Error().Err(err).Str("talk_id", t.ID).Msg("talk analysis failed")
		return
	}
	if _, err := repo.CreateAnalysis(ctx, p.DB, t.ID, t.ProfileID, res.Summary, res.Keyword, positive); err != nil {
		analysisJobs.WithLabelValues("analysis_failed").Inc()
		if errors.Is(err, repo.ErrDuplicate) {
			log.Warn().Str("talk_id", t.ID).Msg("talk already analyzed")
			return
		}
		log.Error().Err(err).Str("talk_id", t.ID).Msg("save talk analysis failed")
		return
	}
	analysisJobs.WithLabelValues("analyzed").Inc()
}
