package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/analysis"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// ArtifactStore fetches meeting artifacts into a local directory and stores
// produced documents.
type ArtifactStore interface {
	FetchArtifacts(ctx context.Context, prefix, destDir string) (int, error)
	UploadJSON(ctx context.Context, objectName string, content []byte) error
}

// Service defines analysis orchestration methods
type Service interface {
	EnqueueAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.AnalysisJob, error)
	RunAnalysis(ctx context.Context, job *entities.AnalysisJob) error
	GetAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalysis, error)
	GetComponent(ctx context.Context, meetingID uuid.UUID, component string) (interface{}, error)
	StartWorkerPool(ctx context.Context, workerCount int) error
	StopWorkerPool() error
}

type analyzerService struct {
	meetingRepo domainrepo.MeetingRepository
	jobRepo     domainrepo.AnalysisJobRepository
	resultRepo  domainrepo.AnalysisRepository
	store       ArtifactStore
	cacheStore  cache.Store
	composer    *analysis.Composer
	writer      *analysis.Writer
	cfg         *config.Config
	logger      *zap.Logger

	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	isWorkerPoolRunning bool
	workerMutex         sync.Mutex
}

// NewService constructs the analysis orchestration service
func NewService(
	meetingRepo domainrepo.MeetingRepository,
	jobRepo domainrepo.AnalysisJobRepository,
	resultRepo domainrepo.AnalysisRepository,
	store ArtifactStore,
	cacheStore cache.Store,
	cfg *config.Config,
	logger *zap.Logger,
) (Service, error) {
	writer, err := analysis.NewWriter(cfg.Analysis.OutputDir)
	if err != nil {
		return nil, err
	}

	return &analyzerService{
		meetingRepo: meetingRepo,
		jobRepo:     jobRepo,
		resultRepo:  resultRepo,
		store:       store,
		cacheStore:  cacheStore,
		composer:    analysis.NewComposer(cfg.Analysis.ReactionSeed, logger),
		writer:      writer,
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// EnqueueAnalysis registers a pending analysis job for a meeting
func (s *analyzerService) EnqueueAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.AnalysisJob, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(meetingID.String())
	}

	job := entities.NewAnalysisJob(meetingID, meeting.ArtifactPrefix)
	job.MaxRetries = s.cfg.Analysis.MaxRetries
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create analysis job", err)
	}

	if err := s.meetingRepo.UpdateStatus(ctx, meetingID, entities.MeetingStatusAnalyzing); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to mark meeting as analyzing",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err))
		}
	}

	if s.logger != nil {
		s.logger.Info("📋 Analysis job enqueued",
			zap.String("job_id", job.ID.String()),
			zap.String("meeting_id", meetingID.String()))
	}

	return job, nil
}

// RunAnalysis executes the full pipeline for one claimed job
func (s *analyzerService) RunAnalysis(ctx context.Context, job *entities.AnalysisJob) error {
	startTime := time.Now()

	workDir := filepath.Join(s.cfg.Analysis.WorkDir, fmt.Sprintf("analysis-%s", job.ID))
	defer os.RemoveAll(workDir)

	// Fetch artifacts with retry; object storage hiccups are transient.
	fetchFn := func() error {
		_, err := s.store.FetchArtifacts(ctx, job.ArtifactPrefix, workDir)
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	bo.MaxInterval = 10 * time.Second
	if err := backoff.Retry(fetchFn, backoff.WithContext(bo, ctx)); err != nil {
		return apperrors.ErrAnalysisFailed(job.MeetingID.String(),
			apperrors.ErrArtifactFetchFailed(job.ArtifactPrefix, err))
	}

	bundle, err := analysis.LoadArtifacts(workDir)
	if err != nil {
		return apperrors.ErrAnalysisFailed(job.MeetingID.String(), err)
	}
	if bundle.Metadata.MeetingID == "" {
		bundle.Metadata.MeetingID = job.MeetingID.String()
	}

	result := s.composer.Analyze(bundle)

	paths, err := s.writer.WriteAll(result)
	if err != nil {
		return apperrors.ErrAnalysisFailed(job.MeetingID.String(), err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return apperrors.ErrAnalysisFailed(job.MeetingID.String(), err)
	}

	record := &entities.MeetingAnalysisRecord{
		MeetingID:          job.MeetingID,
		SchemaVersion:      result.SchemaVersion,
		DurationSeconds:    result.DurationSeconds,
		OverallSentiment:   result.Sentiment.Overall,
		ActiveParticipants: result.Participants.ActiveParticipants,
		SpeakerCount:       len(result.Speakers),
		Payload:            payload,
	}
	if err := s.resultRepo.Save(ctx, record); err != nil {
		return apperrors.ErrAnalysisFailed(job.MeetingID.String(),
			apperrors.ErrDBQueryFailed("save analysis", err))
	}

	// Mirror the full document next to the input artifacts.
	objectName := fmt.Sprintf("%s/meeting-analysis-%s.json", job.ArtifactPrefix, result.MeetingID)
	if err := s.store.UploadJSON(ctx, objectName, payload); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to upload analysis document",
				zap.String("object", objectName),
				zap.Error(err))
		}
	}

	if err := s.meetingRepo.UpdateStatus(ctx, job.MeetingID, entities.MeetingStatusAnalyzed); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to mark meeting as analyzed",
				zap.String("meeting_id", job.MeetingID.String()),
				zap.Error(err))
		}
	}

	// Stale cached analyses must not survive a re-run.
	if s.cacheStore != nil {
		if err := s.cacheStore.Delete(ctx, analysisCacheKey(job.MeetingID)); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to invalidate analysis cache", zap.Error(err))
		}
	}

	if s.logger != nil {
		s.logger.Info("✅ Analysis pipeline finished",
			zap.String("job_id", job.ID.String()),
			zap.String("meeting_id", job.MeetingID.String()),
			zap.Int("documents", len(paths)),
			zap.Duration("elapsed", time.Since(startTime)))
	}

	return nil
}

// GetAnalysis returns the composed analysis for a meeting, reading through
// the cache when possible
func (s *analyzerService) GetAnalysis(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalysis, error) {
	key := analysisCacheKey(meetingID)

	if s.cacheStore != nil {
		if cached, ok, err := s.cacheStore.Get(ctx, key); err == nil && ok {
			var result entities.MeetingAnalysis
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
			// Corrupt cache entry, fall through to the database.
			_ = s.cacheStore.Delete(ctx, key)
		}
	}

	record, err := s.resultRepo.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get analysis", err)
	}
	if record == nil {
		return nil, apperrors.ErrAnalysisNotFound(meetingID.String())
	}

	var result entities.MeetingAnalysis
	if err := json.Unmarshal(record.Payload, &result); err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	if s.cacheStore != nil {
		if err := s.cacheStore.Set(ctx, key, string(record.Payload), s.cfg.Redis.TTL); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to cache analysis", zap.Error(err))
		}
	}

	return &result, nil
}

// GetComponent returns one named component of a meeting's analysis
func (s *analyzerService) GetComponent(ctx context.Context, meetingID uuid.UUID, component string) (interface{}, error) {
	result, err := s.GetAnalysis(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return analysis.Component(result, component)
}

// StartWorkerPool starts background workers that drain the job queue
func (s *analyzerService) StartWorkerPool(ctx context.Context, workerCount int) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool already running")
	}

	s.isWorkerPoolRunning = true
	s.workerStopChan = make(chan struct{})

	if s.logger != nil {
		s.logger.Info("🚀 Starting analysis worker pool",
			zap.Int("worker_count", workerCount))
	}

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.analysisWorker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.stuckJobWorker(ctx)

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *analyzerService) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool not running")
	}

	if s.logger != nil {
		s.logger.Info("🛑 Stopping analysis worker pool...")
	}

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.isWorkerPoolRunning = false

	if s.logger != nil {
		s.logger.Info("✅ Analysis worker pool stopped")
	}

	return nil
}

// analysisWorker polls for claimable jobs and runs the pipeline
func (s *analyzerService) analysisWorker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.cfg.Analysis.PollInterval)
	defer ticker.Stop()

	if s.logger != nil {
		s.logger.Info("👷 Worker started", zap.Int("worker_id", workerID))
	}

	for {
		select {
		case <-s.workerStopChan:
			if s.logger != nil {
				s.logger.Info("👷 Worker stopping", zap.Int("worker_id", workerID))
			}
			return

		case <-ticker.C:
			job, err := s.jobRepo.ClaimPending(parentCtx)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Failed to claim job",
						zap.Int("worker_id", workerID),
						zap.Error(err))
				}
				continue
			}
			if job == nil {
				continue
			}

			if s.logger != nil {
				s.logger.Info("👷 Worker claimed job",
					zap.Int("worker_id", workerID),
					zap.String("job_id", job.ID.String()),
					zap.String("meeting_id", job.MeetingID.String()))
			}

			jobCtx, cancel := jobcontext.JobBegin(parentCtx, job.ID, "analysis", workerID, s.cfg.Analysis.JobTimeout)

			err = jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
				return s.RunAnalysis(ctx, job)
			})

			cancel()

			if err != nil {
				if job.RetryCount+1 < job.MaxRetries && jobcontext.IsRetryableError(err) {
					if s.logger != nil {
						s.logger.Warn("🔁 Job failed, scheduling retry",
							zap.String("job_id", job.ID.String()),
							zap.Int("retry_count", job.RetryCount+1),
							zap.Error(err))
					}
					s.jobRepo.IncrementRetry(parentCtx, job.ID, err.Error())
				} else {
					if s.logger != nil {
						s.logger.Error("❌ Job failed permanently",
							zap.String("job_id", job.ID.String()),
							zap.Error(err))
					}
					s.jobRepo.MarkFailed(parentCtx, job.ID, err.Error())
					s.meetingRepo.UpdateStatus(parentCtx, job.MeetingID, entities.MeetingStatusFailed)
				}
			} else {
				if s.logger != nil {
					s.logger.Info("✅ Job completed successfully",
						zap.String("job_id", job.ID.String()))
				}
				s.jobRepo.MarkCompleted(parentCtx, job.ID)
			}
		}
	}
}

// stuckJobWorker requeues jobs whose worker died mid-run
func (s *analyzerService) stuckJobWorker(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return

		case <-ticker.C:
			jobs, err := s.jobRepo.GetStuckJobs(parentCtx, 15, 10)
			if err != nil {
				if s.logger != nil {
					s.logger.Error("❌ Failed to find stuck jobs", zap.Error(err))
				}
				continue
			}

			for i := range jobs {
				job := jobs[i]
				if s.logger != nil {
					s.logger.Warn("🧟 Requeuing stuck job",
						zap.String("job_id", job.ID.String()),
						zap.Int("retry_count", job.RetryCount))
				}
				if job.RetryCount < job.MaxRetries {
					s.jobRepo.IncrementRetry(parentCtx, job.ID, "worker timed out")
				} else {
					s.jobRepo.MarkFailed(parentCtx, job.ID, "worker timed out")
					s.meetingRepo.UpdateStatus(parentCtx, job.MeetingID, entities.MeetingStatusFailed)
				}
			}
		}
	}
}

func analysisCacheKey(meetingID uuid.UUID) string {
	return fmt.Sprintf("analysis:%s", meetingID)
}
