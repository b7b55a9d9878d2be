package player

// LoadTracker follows the lifecycle of the file an engine was asked to
// play, as reported by its asynchronous start/loaded/end/idle events.
// It decides whether an end event means the file failed to load and
// whether an idle event should move the engine to Stopped.
// It is not safe for concurrent use.
type LoadTracker struct {
	pending  bool // load requested, START_FILE not seen yet
	loading  bool // between START_FILE and FILE_LOADED
	stopping bool // the current file is being ended on purpose
}

// LoadRequested records a new load command. A file still loading
// is being replaced, so its end is not a failure.
func (t *LoadTracker) LoadRequested() {
	t.pending = true
	t.stopping = t.loading
}

// StopRequested records a user stop.
func (t *LoadTracker) StopRequested() {
	t.pending = false
	t.stopping = true
}

func (t *LoadTracker) FileStarted() {
	t.pending = false
	t.loading = true
	t.stopping = false
}

func (t *LoadTracker) FileLoaded() {
	t.loading = false
}

// FileEnded reports whether the file ended before it finished loading
// for a reason other than a stop or replacement.
func (t *LoadTracker) FileEnded() (failed bool) {
	failed = t.loading && !t.stopping
	t.loading = false
	t.stopping = false
	return failed
}

// Idle reports whether an idle event means playback has stopped.
// Idle events left over from before a new load are ignored.
func (t *LoadTracker) Idle() (stopped bool) {
	return !t.pending
}
