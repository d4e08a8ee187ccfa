package search

// Observer is an injectable instrumentation hook into the A* search
// loop, in place of a global counter. It has no UI dependency;
// internal/obsmetrics.PrometheusObserver is the production
// implementation.
type Observer interface {
	// OnNodeExpanded fires once per A* node popped and expanded (not
	// per tombstoned/discarded pop).
	OnNodeExpanded(agentID int, pos Position)
	// OnGoalReached fires when an agent search finds its goal node.
	OnGoalReached(agentID int, pos Position)
	// OnRepairStarted fires at the beginning of a PCA* repair, before
	// any nodes are removed.
	OnRepairStarted(agentID int, constraint Constraint)
	// OnNodeInvalidated fires once per node PCA* removes from OPEN or
	// CLOSED during a repair.
	OnNodeInvalidated(agentID int, pos Position)
}

// noopObserver implements Observer with no-ops; used when the caller
// passes a nil Observer.
type noopObserver struct{}

func (noopObserver) OnNodeExpanded(int, Position)     {}
func (noopObserver) OnGoalReached(int, Position)      {}
func (noopObserver) OnRepairStarted(int, Constraint)  {}
func (noopObserver) OnNodeInvalidated(int, Position)  {}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return noopObserver{}
	}
	return o
}
