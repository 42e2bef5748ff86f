package job

// result is the outcome of one stage: a value, or the error that stops the
// pipeline. Stages are chained with then, which skips the remaining stages
// once a failure has been recorded.
type result[T any] struct {
	value T
	err   *StageError
}

func succeed[T any](v T) result[T] {
	return result[T]{value: v}
}

func fail[T any](err *StageError) result[T] {
	return result[T]{err: err}
}

func (r result[T]) failed() bool {
	return r.err != nil
}

// then runs next with the previous value, or carries the failure forward
// without calling it.
func then[T, U any](r result[T], next func(T) result[U]) result[U] {
	if r.failed() {
		return fail[U](r.err)
	}
	return next(r.value)
}

// finally collapses the chain into the caller's (value, error) return.
func finally[T, U any](r result[T], onSuccess func(T) (U, error), onFailure func(*StageError) (U, error)) (U, error) {
	if r.failed() {
		return onFailure(r.err)
	}
	return onSuccess(r.value)
}
