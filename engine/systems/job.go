package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/renderer/metadata"
)

type JobSystem struct {
	numWorkers int
	jobQueue   chan metadata.JobTask
	wg         sync.WaitGroup

	// guards jobQueue against sends after close
	mu     sync.RWMutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrMissingJobStart = fmt.Errorf("attempting to submit a job without an entry point")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan metadata.JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				// Run the job and handle potential errors
				result, err := job.OnStart(job.InputParams)
				if err != nil {
					core.LogError(err.Error())
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
				} else {
					if job.OnComplete != nil {
						job.OnComplete(result)
					}
				}

				// Call the completion callback if set
				if job.OnCompletionCallback != nil {
					job.OnCompletionCallback()
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs are drained first.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution.
 * Blocks while the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt metadata.JobTask) error {
	if jt.OnStart == nil {
		return ErrMissingJobStart
	}

	js.mu.RLock()
	defer js.mu.RUnlock()

	if js.closed {
		return core.ErrSystemShutdown
	}
	js.jobQueue <- jt
	return nil
}

/**
 * @brief Generates one geometry per config on the worker pool.
 *
 * @param ctx Cancels jobs that have not started yet.
 * @param gs The geometry system the geometries are registered with.
 * @param configs The geometries to generate.
 * @param autoRelease Passed on to GeometrySystem.AcquireFromConfig.
 * @return The geometries in the order of configs. On failure, the successful
 * entries are still returned and the error joins every failure.
 */
func (js *JobSystem) GenerateBatch(ctx context.Context, gs *GeometrySystem, configs []metadata.GeometryConfig, autoRelease bool) ([]*metadata.Geometry, error) {
	geometries := make([]*metadata.Geometry, len(configs))
	errs := make([]error, len(configs))

	var pending sync.WaitGroup
	for i := range configs {
		pending.Add(1)
		err := js.Submit(metadata.JobTask{
			JobType:     metadata.JOB_TYPE_GEOMETRY,
			InputParams: &configs[i],
			OnStart: func(params interface{}) (interface{}, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return gs.AcquireFromConfig(params.(*metadata.GeometryConfig), autoRelease)
			},
			OnComplete: func(result interface{}) {
				geometries[i] = result.(*metadata.Geometry)
			},
			OnFailure: func(err error) {
				errs[i] = err
			},
			OnCompletionCallback: pending.Done,
		})
		if err != nil {
			pending.Done()
			errs[i] = err
		}
	}
	pending.Wait()

	return geometries, errors.Join(errs...)
}
