package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-coursekb-be/internal/dto"
	"ai-coursekb-be/internal/entity"
	"ai-coursekb-be/internal/pkg/apperror"
	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/internal/repository/memory"
	"ai-coursekb-be/internal/repository/specification"
	"ai-coursekb-be/internal/repository/unitofwork"
	"ai-coursekb-be/pkg/embedding"
	"ai-coursekb-be/pkg/events"
	"ai-coursekb-be/pkg/extraction"
	"ai-coursekb-be/pkg/llm"
	pktNats "ai-coursekb-be/pkg/nats"

	"github.com/google/uuid"
)

// topicChunkLimit caps how many nearest chunks feed one topic's synthesis.
const topicChunkLimit = 8

type IExtractionService interface {
	StartExtraction(ctx context.Context, instructorId, sessionId uuid.UUID, req *dto.StartExtractionRequest) (*dto.StartExtractionResponse, error)
	Reextract(ctx context.Context, instructorId, sessionId uuid.UUID, req *dto.ReextractRequest) (*dto.ReextractResponse, error)
	GetJob(ctx context.Context, jobId uuid.UUID) (*dto.JobStatusResponse, error)
	CancelJob(ctx context.Context, jobId uuid.UUID) (*dto.CancelJobResponse, error)
	GetTopics(ctx context.Context, instructorId, sessionId uuid.UUID) ([]*dto.TopicWithKnowledgeResponse, error)
}

type extractionService struct {
	uowFactory     unitofwork.RepositoryFactory
	jobRepo        *memory.JobRepository
	synthesizer    *extraction.Synthesizer
	scheduler      *extraction.Scheduler
	planner        *extraction.Planner
	embedder       embedding.EmbeddingProvider
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger

	mu      sync.Mutex
	cancels map[uuid.UUID]context.CancelFunc
}

func NewExtractionService(
	uowFactory unitofwork.RepositoryFactory,
	jobRepo *memory.JobRepository,
	synthesizer *extraction.Synthesizer,
	scheduler *extraction.Scheduler,
	planner *extraction.Planner,
	embedder embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IExtractionService {
	return &extractionService{
		uowFactory:     uowFactory,
		jobRepo:        jobRepo,
		synthesizer:    synthesizer,
		scheduler:      scheduler,
		planner:        planner,
		embedder:       embedder,
		eventPublisher: eventPublisher,
		logger:         log,
		cancels:        make(map[uuid.UUID]context.CancelFunc),
	}
}

// StartExtraction proposes topics synchronously, then synthesizes their
// knowledge in a background run. Any previous topics for the session are
// discarded: a direct extract request is always a full build.
func (s *extractionService) StartExtraction(ctx context.Context, instructorId, sessionId uuid.UUID, req *dto.StartExtractionRequest) (*dto.StartExtractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwned(ctx, uow, instructorId, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.CanStartExtraction() {
		return nil, apperror.Validation("extraction already running for session %s", sessionId)
	}

	chunks, err := uow.ChunkRepository().Window(ctx, sessionId, 0)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, apperror.Validation("session %s has no chunks to extract from", sessionId)
	}

	titles, err := s.synthesizer.ProposeTopics(ctx, req.ModelId, chunkTexts(chunks))
	if err != nil {
		return nil, mapGenerationError(err)
	}

	topics, err := s.rebuildTopics(ctx, uow, session, titles)
	if err != nil {
		return nil, err
	}

	job := s.launchRun(session, req.ModelId, "full", topics)

	return &dto.StartExtractionResponse{
		JobId:     job.Id,
		SessionId: sessionId,
		State:     string(job.State),
	}, nil
}

// Reextract refreshes a previously extracted session. Auto mode rebuilds
// everything when the chunk set changed structurally and otherwise keeps
// knowledge for topics whose titles still match.
func (s *extractionService) Reextract(ctx context.Context, instructorId, sessionId uuid.UUID, req *dto.ReextractRequest) (*dto.ReextractResponse, error) {
	mode, err := extraction.ParseMode(req.Mode)
	if err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwned(ctx, uow, instructorId, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.CanStartExtraction() {
		return nil, apperror.Validation("extraction already running for session %s", sessionId)
	}
	if !session.HasBeenExtracted() {
		return nil, apperror.Validation("session %s has never been extracted, use extract instead", sessionId)
	}

	chunks, err := uow.ChunkRepository().Window(ctx, sessionId, 0)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, apperror.Validation("session %s has no chunks to extract from", sessionId)
	}

	currentIds, err := uow.ChunkRepository().ListIds(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	mode = s.planner.ChooseMode(mode, session.ExtractedChunkIds, idsToStrings(currentIds))

	titles, err := s.synthesizer.ProposeTopics(ctx, req.ModelId, chunkTexts(chunks))
	if err != nil {
		return nil, mapGenerationError(err)
	}

	var (
		toProcess []*entity.Topic
		res       = &dto.ReextractResponse{SessionId: sessionId, Mode: string(mode)}
	)

	if mode == extraction.ModeFull {
		toProcess, err = s.rebuildTopics(ctx, uow, session, titles)
		if err != nil {
			return nil, err
		}
		res.TopicsAdded = len(toProcess)
	} else {
		existing, err := uow.TopicRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
		if err != nil {
			return nil, err
		}

		diff := s.planner.DiffTopics(titles, toExistingTopics(existing))
		toProcess, err = s.applyPartialDiff(ctx, uow, session, diff, existing)
		if err != nil {
			return nil, err
		}
		res.TopicsAdded = len(diff.Added)
		res.TopicsReused = len(diff.Reused)
		res.TopicsReextracted = len(diff.Stale)
	}

	job := s.launchRun(session, req.ModelId, string(mode), toProcess)
	res.JobId = job.Id
	return res, nil
}

func (s *extractionService) GetJob(ctx context.Context, jobId uuid.UUID) (*dto.JobStatusResponse, error) {
	job, found := s.jobRepo.Get(jobId)
	if !found {
		return nil, apperror.NotFound("job %s not found", jobId)
	}

	results := make([]dto.TopicResultDTO, len(job.Results))
	for i, r := range job.Results {
		results[i] = dto.TopicResultDTO{
			TopicId:      r.TopicId,
			Title:        r.Title,
			Outcome:      r.Outcome,
			Reason:       r.Reason,
			QualityScore: r.QualityScore,
		}
	}

	return &dto.JobStatusResponse{
		JobId:                 job.Id,
		SessionId:             job.SessionId,
		ModelId:               job.ModelId,
		Mode:                  job.Mode,
		State:                 string(job.State),
		Total:                 job.Total,
		ProcessedSuccessfully: job.Processed,
		Failed:                job.Failed,
		BatchSize:             job.BatchSize,
		Batches:               job.Batches,
		Results:               results,
		Error:                 job.Error,
		StartedAt:             job.StartedAt,
		FinishedAt:            job.FinishedAt,
	}, nil
}

func (s *extractionService) CancelJob(ctx context.Context, jobId uuid.UUID) (*dto.CancelJobResponse, error) {
	job, found := s.jobRepo.Get(jobId)
	if !found {
		return nil, apperror.NotFound("job %s not found", jobId)
	}
	if job.IsTerminal() {
		return nil, apperror.Validation("job %s is already %s", jobId, job.State)
	}

	s.mu.Lock()
	cancel, ok := s.cancels[jobId]
	s.mu.Unlock()
	if ok {
		cancel()
	}

	s.logger.Info("extraction", "Job cancellation requested", map[string]interface{}{
		"job_id": jobId,
	})

	// The run goroutine records the terminal state; the batch in flight
	// finishes first.
	return &dto.CancelJobResponse{
		JobId: jobId,
		State: string(entity.JobCanceled),
	}, nil
}

func (s *extractionService) GetTopics(ctx context.Context, instructorId, sessionId uuid.UUID) ([]*dto.TopicWithKnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, instructorId, sessionId); err != nil {
		return nil, err
	}

	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TopicWithKnowledgeResponse, len(topics))
	for i, topic := range topics {
		item := &dto.TopicWithKnowledgeResponse{
			Id:        topic.Id,
			Title:     topic.Title,
			Status:    string(topic.Status),
			CreatedAt: topic.CreatedAt,
			UpdatedAt: topic.UpdatedAt,
		}

		kb, err := uow.KnowledgeBaseRepository().FindByTopicId(ctx, topic.Id)
		if err != nil {
			return nil, err
		}
		if kb != nil {
			item.Knowledge = toKnowledgeDTO(kb)
		}
		res[i] = item
	}
	return res, nil
}

// rebuildTopics drops every topic and knowledge base of the session and
// creates fresh pending topics for the proposed titles.
func (s *extractionService) rebuildTopics(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.CourseSession, titles []string) ([]*entity.Topic, error) {
	topics := make([]*entity.Topic, len(titles))
	for i, title := range titles {
		topics[i] = &entity.Topic{
			Id:        uuid.New(),
			SessionId: session.Id,
			Title:     title,
			Status:    entity.TopicPending,
			CreatedAt: time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeBaseRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return nil, err
	}
	if err := uow.TopicRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return nil, err
	}
	if err := uow.TopicRepository().CreateBulk(ctx, topics); err != nil {
		return nil, err
	}
	if err := uow.CourseSessionRepository().UpdateStatus(ctx, session.Id, s.runningStatus(session)); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return topics, nil
}

// applyPartialDiff creates pending topics for new titles and marks stale
// ones for re-synthesis. Reused topics and their knowledge are untouched.
func (s *extractionService) applyPartialDiff(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.CourseSession, diff extraction.TopicDiff, existing []*entity.Topic) ([]*entity.Topic, error) {
	byId := make(map[string]*entity.Topic, len(existing))
	for _, t := range existing {
		byId[t.Id.String()] = t
	}

	added := make([]*entity.Topic, len(diff.Added))
	for i, title := range diff.Added {
		added[i] = &entity.Topic{
			Id:        uuid.New(),
			SessionId: session.Id,
			Title:     title,
			Status:    entity.TopicPending,
			CreatedAt: time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.TopicRepository().CreateBulk(ctx, added); err != nil {
		return nil, err
	}
	for _, stale := range diff.Stale {
		if t, ok := byId[stale.Id]; ok {
			if err := uow.TopicRepository().UpdateStatus(ctx, t.Id, entity.TopicStale); err != nil {
				return nil, err
			}
		}
	}
	// A reused topic may still be flagged stale from the chunk sync; the
	// title match declares its knowledge current again.
	for _, reused := range diff.Reused {
		if t, ok := byId[reused.Id]; ok && t.Status != entity.TopicExtracted {
			if err := uow.TopicRepository().UpdateStatus(ctx, t.Id, entity.TopicExtracted); err != nil {
				return nil, err
			}
		}
	}
	if err := uow.CourseSessionRepository().UpdateStatus(ctx, session.Id, s.runningStatus(session)); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	toProcess := added
	for _, stale := range diff.Stale {
		if t, ok := byId[stale.Id]; ok {
			toProcess = append(toProcess, t)
		}
	}
	return toProcess, nil
}

func (s *extractionService) runningStatus(session *entity.CourseSession) entity.ExtractionStatus {
	if session.HasBeenExtracted() {
		return entity.StatusReextracting
	}
	return entity.StatusExtracting
}

// launchRun registers the job and starts the background synthesis run. The
// run context is detached from the request so the HTTP client disconnecting
// does not abort extraction; only an explicit cancel does.
func (s *extractionService) launchRun(session *entity.CourseSession, modelId, mode string, topics []*entity.Topic) *entity.ExtractionJob {
	job := &entity.ExtractionJob{
		Id:        uuid.New(),
		SessionId: session.Id,
		ModelId:   modelId,
		Mode:      mode,
		State:     entity.JobPending,
		Total:     len(topics),
		StartedAt: time.Now(),
	}
	s.jobRepo.Save(job)

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[job.Id] = cancel
	s.mu.Unlock()

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(runCtx, events.NewExtractionStarted(session.Id.String(), job.Id.String(), modelId, len(topics))); err != nil {
			s.logger.Warn("extraction", "Failed to publish started event", map[string]interface{}{
				"job_id": job.Id,
				"error":  err.Error(),
			})
		}
	}

	go s.run(runCtx, job, session, topics)
	return job
}

func (s *extractionService) run(ctx context.Context, job *entity.ExtractionJob, session *entity.CourseSession, topics []*entity.Topic) {
	defer func() {
		s.mu.Lock()
		delete(s.cancels, job.Id)
		s.mu.Unlock()
	}()

	job.State = entity.JobRunning
	s.jobRepo.Save(job)

	items := make([]extraction.Item, len(topics))
	for i, t := range topics {
		items[i] = extraction.Item{Index: i, TopicId: t.Id, Title: t.Title}
	}

	report, err := s.scheduler.Run(ctx, items, job.ModelId, func(ctx context.Context, item extraction.Item) (*extraction.KnowledgePayload, error) {
		return s.synthesizeTopic(ctx, session.Id, job.ModelId, item.Title)
	})
	if err != nil {
		s.finishFailed(job, session, err)
		return
	}

	// A cancel kills ctx, but the batches that already finished still have
	// to land; persistence runs on a detached context and the cancel only
	// decides the terminal job state in finish.
	if persistErr := s.persistResults(context.WithoutCancel(ctx), session.Id, topics, report); persistErr != nil {
		s.finishFailed(job, session, persistErr)
		return
	}

	s.finish(ctx, job, session, topics, report)
}

// synthesizeTopic selects the chunks backing one topic and synthesizes its
// knowledge. A topic with no relevant chunks falls back to the first chunks
// of the session and is marked degraded instead of failing.
func (s *extractionService) synthesizeTopic(ctx context.Context, sessionId uuid.UUID, modelId, title string) (*extraction.KnowledgePayload, error) {
	texts, fallbackReason := s.topicChunks(ctx, sessionId, title)
	if len(texts) == 0 {
		return nil, apperror.NotFound("no chunks available for topic %q", title)
	}

	payload, err := s.synthesizer.Synthesize(ctx, modelId, title, texts)
	if err != nil {
		return nil, err
	}

	if fallbackReason != "" {
		payload.Degraded = true
		if payload.DegradedReason != "" {
			payload.DegradedReason = fallbackReason + "; " + payload.DegradedReason
		} else {
			payload.DegradedReason = fallbackReason
		}
	}
	return payload, nil
}

func (s *extractionService) topicChunks(ctx context.Context, sessionId uuid.UUID, title string) ([]string, string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	embeddingRes, err := s.embedder.Generate(title, "RETRIEVAL_QUERY")
	if err == nil {
		scored, searchErr := uow.ChunkRepository().SearchNearest(ctx, sessionId, embeddingRes.Embedding.Values, topicChunkLimit)
		if searchErr == nil && len(scored) > 0 {
			texts := make([]string, len(scored))
			for i, sc := range scored {
				texts[i] = sc.Chunk.Text
			}
			return texts, ""
		}
	}

	// Deterministic fallback: the leading chunks of the session.
	chunks, err := uow.ChunkRepository().Window(ctx, sessionId, extraction.FallbackChunkCount)
	if err != nil || len(chunks) == 0 {
		return nil, ""
	}
	return chunkTexts(chunks), "no relevant chunks found, used leading session chunks"
}

// persistResults writes the surviving knowledge in one transaction: each
// processed topic gets its knowledge base replaced atomically, each failed
// topic is only marked, never stripped of previous knowledge.
func (s *extractionService) persistResults(ctx context.Context, sessionId uuid.UUID, topics []*entity.Topic, report *extraction.RunReport) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for i, res := range report.Results {
		topic := topics[i]
		switch res.Outcome {
		case extraction.OutcomeSucceeded, extraction.OutcomeDegraded:
			kb := toKnowledgeEntity(topic.Id, res.Knowledge)
			if err := uow.KnowledgeBaseRepository().Replace(ctx, kb); err != nil {
				return err
			}
			if err := uow.TopicRepository().UpdateStatus(ctx, topic.Id, entity.TopicExtracted); err != nil {
				return err
			}
		case extraction.OutcomeFailed:
			if err := uow.TopicRepository().UpdateStatus(ctx, topic.Id, entity.TopicFailed); err != nil {
				return err
			}
		}
	}

	return uow.Commit()
}

func (s *extractionService) finish(ctx context.Context, job *entity.ExtractionJob, session *entity.CourseSession, topics []*entity.Topic, report *extraction.RunReport) {
	canceled := ctx.Err() != nil

	job.Processed = report.Processed
	job.Failed = len(report.Failed)
	job.BatchSize = report.BatchSize
	job.Batches = report.Batches
	job.Results = toTopicResults(topics, report)
	now := time.Now()
	job.FinishedAt = &now
	if canceled {
		job.State = entity.JobCanceled
	} else {
		job.State = entity.JobCompleted
	}
	s.jobRepo.Save(job)

	s.updateSessionAfterRun(session, canceled, report.Processed)

	if s.eventPublisher != nil {
		evt := events.NewExtractionCompleted(session.Id.String(), job.Id.String(), report.Processed, len(report.Failed), job.Total)
		if canceled {
			evt = events.NewExtractionFailed(session.Id.String(), job.Id.String(), "run canceled")
		}
		if err := s.eventPublisher.Publish(context.Background(), evt); err != nil {
			s.logger.Warn("extraction", "Failed to publish completion event", map[string]interface{}{
				"job_id": job.Id,
				"error":  err.Error(),
			})
		}
	}
}

func (s *extractionService) finishFailed(job *entity.ExtractionJob, session *entity.CourseSession, err error) {
	job.State = entity.JobFailed
	job.Error = err.Error()
	now := time.Now()
	job.FinishedAt = &now
	s.jobRepo.Save(job)

	s.updateSessionAfterRun(session, true, 0)

	s.logger.Error("extraction", "Extraction run failed", map[string]interface{}{
		"job_id":     job.Id,
		"session_id": session.Id,
		"error":      err.Error(),
	})

	if s.eventPublisher != nil {
		if pubErr := s.eventPublisher.Publish(context.Background(), events.NewExtractionFailed(session.Id.String(), job.Id.String(), err.Error())); pubErr != nil {
			s.logger.Warn("extraction", "Failed to publish failure event", map[string]interface{}{
				"job_id": job.Id,
				"error":  pubErr.Error(),
			})
		}
	}
}

// updateSessionAfterRun settles the session state machine. A completed run
// lands on extracted and records the chunk fingerprint; an aborted run lands
// on stale (or back on unextracted when nothing was ever produced).
func (s *extractionService) updateSessionAfterRun(session *entity.CourseSession, aborted bool, processed int) {
	ctx := context.Background()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if aborted {
		status := entity.StatusStale
		if processed == 0 && !session.HasBeenExtracted() {
			status = entity.StatusUnextracted
		}
		if err := uow.CourseSessionRepository().UpdateStatus(ctx, session.Id, status); err != nil {
			s.logger.Error("extraction", "Failed to settle session status", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
		return
	}

	currentIds, err := uow.ChunkRepository().ListIds(ctx, session.Id)
	if err != nil {
		s.logger.Error("extraction", "Failed to read chunk fingerprint", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return
	}

	session.Status = entity.StatusExtracted
	session.ExtractedChunkIds = idsToStrings(currentIds)
	if err := uow.CourseSessionRepository().Update(ctx, session); err != nil {
		s.logger.Error("extraction", "Failed to update session after run", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

func (s *extractionService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, instructorId, sessionId uuid.UUID) (*entity.CourseSession, error) {
	session, err := uow.CourseSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByInstructorID{InstructorID: instructorId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session %s not found", sessionId)
	}
	return session, nil
}

func toExistingTopics(topics []*entity.Topic) []extraction.ExistingTopic {
	out := make([]extraction.ExistingTopic, len(topics))
	for i, t := range topics {
		out[i] = extraction.ExistingTopic{Id: t.Id.String(), Title: t.Title}
	}
	return out
}

func toTopicResults(topics []*entity.Topic, report *extraction.RunReport) []entity.TopicResult {
	results := make([]entity.TopicResult, len(report.Results))
	for i, res := range report.Results {
		tr := entity.TopicResult{
			TopicId: topics[i].Id,
			Title:   res.Item.Title,
			Outcome: res.Outcome.String(),
			Reason:  res.Reason,
		}
		if res.Knowledge != nil {
			tr.QualityScore = res.Knowledge.QualityScore
		}
		results[i] = tr
	}
	return results
}

func toKnowledgeEntity(topicId uuid.UUID, payload *extraction.KnowledgePayload) *entity.KnowledgeBase {
	kb := &entity.KnowledgeBase{
		Id:             uuid.New(),
		TopicId:        topicId,
		Summary:        payload.Summary,
		Objectives:     payload.Objectives,
		QualityScore:   payload.QualityScore,
		Degraded:       payload.Degraded,
		DegradedReason: payload.DegradedReason,
		CreatedAt:      time.Now(),
	}
	for _, c := range payload.Concepts {
		kb.Concepts = append(kb.Concepts, entity.Concept{
			Term:       c.Term,
			Definition: c.Definition,
			Importance: c.Importance,
		})
	}
	for _, qa := range payload.QAPairs {
		kb.QAPairs = append(kb.QAPairs, entity.QAPair{
			Question:   qa.Question,
			Answer:     qa.Answer,
			Difficulty: qa.Difficulty,
		})
	}
	return kb
}

func toKnowledgeDTO(kb *entity.KnowledgeBase) *dto.KnowledgeBaseDTO {
	out := &dto.KnowledgeBaseDTO{
		Summary:        kb.Summary,
		Objectives:     kb.Objectives,
		QualityScore:   kb.QualityScore,
		Degraded:       kb.Degraded,
		DegradedReason: kb.DegradedReason,
	}
	for _, c := range kb.Concepts {
		out.Concepts = append(out.Concepts, dto.ConceptDTO{
			Term:       c.Term,
			Definition: c.Definition,
			Importance: c.Importance,
		})
	}
	for _, qa := range kb.QAPairs {
		out.QAPairs = append(out.QAPairs, dto.QAPairDTO{
			Question:   qa.Question,
			Answer:     qa.Answer,
			Difficulty: qa.Difficulty,
		})
	}
	return out
}

// mapGenerationError attaches error kinds to generation failures so the
// HTTP layer answers with the right status.
func mapGenerationError(err error) error {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return apperror.Wrap(apperror.KindGenerationRateLimited, "generation rate limited", err)
	case errors.Is(err, llm.ErrTimeout):
		return apperror.Wrap(apperror.KindGenerationTimeout, "generation timed out", err)
	case errors.Is(err, llm.ErrContextTooLarge):
		return apperror.Wrap(apperror.KindContextTooLarge, "prompt exceeds model context", err)
	default:
		return apperror.Internal("topic proposal failed", err)
	}
}

func chunkTexts(chunks []*entity.Chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return texts
}
