package trade

// ExecutedEvent is published after a trade has been executed and persisted.
// Subscribers (reward generation, notifications) derive everything they need
// from the completed record.
type ExecutedEvent struct {
	Completed *CompletedTrade
}

// EventType identifies the event on the bus.
func (ExecutedEvent) EventType() string { return "TradeExecutedEvent" }
