package types

// Signal is the raw trigger a policy computes from a chart, before
// debouncing and affordability checks are applied.
type Signal struct {
	// Action is the action the trigger asks for. ActionHold means no trigger.
	Action Action
	// Reason is a human readable explanation of the trigger
	Reason string
	// Indicator is the indicator that generated the signal
	Indicator IndicatorType
	// RawValue holds the indicator values the trigger was evaluated on
	RawValue map[string]float64
}

// NoSignal returns a signal that asks for no action.
func NoSignal(reason string) Signal {
	return Signal{
		Action: ActionHold,
		Reason: reason,
	}
}
