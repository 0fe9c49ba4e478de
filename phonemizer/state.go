package phonemizer

// StateType represents the lifecycle state of a Phonemizer instance.
type StateType int

const (
	// StateUninitialized indicates the engine has not been touched yet.
	StateUninitialized StateType = iota
	// StateInitializing indicates engine initialization is in progress.
	StateInitializing
	// StateReady indicates the engine is initialized and accepting calls.
	StateReady
	// StateFailed indicates engine initialization failed. Terminal.
	StateFailed
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// stateMachine manages lifecycle transitions for a Phonemizer instance.
//
// Valid transitions:
//
//	Uninitialized -> Initializing
//	Initializing  -> Ready | Failed
//	Ready         -> Ready (every subsequent call)
//
// StateFailed is terminal: the initialization error is cached and every
// later call fails with it. There is no retry path.
type stateMachine struct {
	current     StateType
	transitions map[StateType][]StateType

	// initErr is set when entering StateFailed and never cleared.
	initErr error
}

func newStateMachine() *stateMachine {
	return &stateMachine{
		current: StateUninitialized,
		transitions: map[StateType][]StateType{
			StateUninitialized: {StateInitializing},
			StateInitializing:  {StateReady, StateFailed},
			StateReady:         {StateReady},
			StateFailed:        {},
		},
	}
}

// transition attempts to transition to the specified state.
func (sm *stateMachine) transition(to StateType) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	sm.current = to
	return true
}

// fail moves the machine to StateFailed and caches err for all later calls.
func (sm *stateMachine) fail(err error) {
	if sm.transition(StateFailed) {
		sm.initErr = err
	}
}

// current state accessor.
func (sm *stateMachine) state() StateType {
	return sm.current
}

// failure returns the cached initialization error, or nil.
func (sm *stateMachine) failure() error {
	return sm.initErr
}
