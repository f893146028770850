package kernel

// State describes the lifecycle stage of the kernel.
type State uint8

const (
	// StateBooting is the initial state; it is entered once control is
	// transferred from the bootloader.
	StateBooting State = iota

	// StateRunning is the steady state reached after initialization.
	StateRunning

	// StateHalted is terminal and is only entered via the fatal-failure
	// path.
	StateHalted
)

var state = StateBooting

// CurrentState returns the current kernel state.
func CurrentState() State {
	return state
}

// SetState transitions the kernel to newState. Once halted, the kernel can
// never leave StateHalted and SetState returns false.
func SetState(newState State) bool {
	if state == StateHalted {
		return newState == StateHalted
	}

	state = newState
	return true
}

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateBooting:
		return "booting"
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// SetStateForTest forces the kernel state to s, bypassing the halted state
// check. It only exists so tests in other packages can reset the state
// machine between runs.
func SetStateForTest(s State) {
	state = s
}
