package memory

import (
	"time"

	"ai-coursekb-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// JobRepository holds extraction job state in memory. Jobs are transient by
// contract: terminal jobs expire after the TTL and a restart drops
// everything, which clients observe as job-not-found and re-submit.
type JobRepository struct {
	cache *cache.Cache
}

func NewJobRepository() *JobRepository {
	// Jobs stay visible for an hour after their last update; the janitor
	// sweeps every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &JobRepository{
		cache: c,
	}
}

func (r *JobRepository) Save(job *entity.ExtractionJob) {
	r.cache.Set(job.Id.String(), job, cache.DefaultExpiration)
}

func (r *JobRepository) Get(jobId uuid.UUID) (*entity.ExtractionJob, bool) {
	if x, found := r.cache.Get(jobId.String()); found {
		return x.(*entity.ExtractionJob), true
	}
	return nil, false
}

func (r *JobRepository) Delete(jobId uuid.UUID) {
	r.cache.Delete(jobId.String())
}
