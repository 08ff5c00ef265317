package metadata

import "context"

/** @brief Describes a type of job */
type JobType int

const (
	/**
	 * @brief A general job that does not have any specific thread requirements.
	 * This means it matters little which job thread this job runs on.
	 */
	JOB_TYPE_GENERAL JobType = 0x02
	/**
	 * @brief A resource loading job. Resources should always load on the same thread
	 * to avoid potential disk thrashing.
	 */
	JOB_TYPE_RESOURCE_LOAD JobType = 0x04
)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	/** @brief The type of job. */
	JobType JobType
	/** @brief A name used in the logs. */
	Name string
	/** @brief Invoked on a worker goroutine when the job starts. Required. */
	OnStart func(ctx context.Context) (interface{}, error)
	/** @brief Invoked on the worker goroutine with the result of OnStart when it succeeded. Optional. */
	OnComplete func(result interface{})
	/** @brief Invoked on the worker goroutine with the error of OnStart when it failed. Optional. */
	OnFailure func(err error)
}
