package contracts

import "context"

// Dispatcher runs side effects off the request path. Submit never blocks the
// caller; onFailure receives the task error and must not be nil.
type Dispatcher interface {
	Submit(name string, task func(ctx context.Context) error, onFailure func(err error)) error
	Shutdown(ctx context.Context) error
}
