package orchestrator

import "porticus/pkg/logger"

// State is the lifecycle of one Classify call.
type State int

const (
	NotStarted State = iota
	ResolvingFamily
	// Pending is the gap between batches, when no row is being worked on.
	Pending
	InProgress
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case ResolvingFamily:
		return "resolving_family"
	case Pending:
		return "pending"
	case InProgress:
		return "in_progress"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

func (s State) Terminal() bool { return s == Done || s == Failed }

type runState struct {
	opts  Options
	state State
	log   *logger.Logger
}

func (r *runState) to(s State) {
	if r.state == s || r.state.Terminal() {
		return
	}
	r.log.Debugf("state %s -> %s", r.state, s)
	r.state = s
	if r.opts.OnState != nil {
		r.opts.OnState(s)
	}
}

func (r *runState) progress(done, total int) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(done, total)
	}
}
