package commands

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cms-site/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// Executor runs one message.
type Executor[T command.Message] interface {
	Execute(ctx context.Context, msg T) error
}

// Detach runs handler for msg on its own goroutine. The task keeps the values of
// ctx but not its cancellation, so it outlives the request that started it. It
// is never retried and its failure is only logged as a SideEffectError. The
// returned channel closes when the task finishes.
func Detach[T command.Message](ctx context.Context, logger interfaces.Logger, handler Executor[T], msg T) <-chan struct{} {
	done := make(chan struct{})
	logger = EnsureLogger(logger)
	if handler == nil {
		close(done)
		return done
	}

	detached := context.WithoutCancel(EnsureContext(ctx))
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logSideEffect(logger, msg, fmt.Errorf("panic: %v", r))
			}
		}()
		if err := handler.Execute(detached, msg); err != nil {
			logSideEffect(logger, msg, err)
		}
	}()
	return done
}

func logSideEffect[T command.Message](logger interfaces.Logger, msg T, err error) {
	sideErr := &SideEffectError{Command: command.GetMessageType(msg), Err: err}
	logger.Warn("command.side_effect.failed", "command", sideErr.Command, "error", sideErr)
}
