package types

import "fmt"

// Action is one of the discrete moves a policy can take in a turn.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	// ActionHold is written on the wire as "no_moves".
	ActionHold Action = "hold"
)

// Decision is the outcome of one decision cycle.
type Decision struct {
	// Action is the action taken this turn
	Action Action
	// Pair is the traded instrument, empty for ActionHold
	Pair string
	// Quantity is the amount of the base asset to trade, zero for ActionHold
	Quantity float64
	// Price is the close the decision was taken at
	Price float64
	// Reason explains why the action was (or was not) taken
	Reason string
	// Policy is the name of the policy that produced the decision
	Policy string
}

// Hold returns a decision that takes no action.
func Hold(reason string) Decision {
	return Decision{
		Action: ActionHold,
		Reason: reason,
	}
}

// IsHold reports whether the decision takes no action.
func (d Decision) IsHold() bool {
	return d.Action == ActionHold || d.Action == ""
}

func (d Decision) String() string {
	if d.IsHold() {
		return fmt.Sprintf("hold (%s)", d.Reason)
	}

	return fmt.Sprintf("%s %s %f @ %f (%s)", d.Action, d.Pair, d.Quantity, d.Price, d.Reason)
}
