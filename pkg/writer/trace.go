package writer

// Collector observes node allocation. It is used to rebuild the decision
// graph, including the branches that were rolled back.
type Collector interface {
	NodeAllocated(id NodeID, item Item)
}

// Recorder is a Collector that keeps every allocated node id in allocation order.
type Recorder struct {
	ids []NodeID
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NodeAllocated implements Collector.
func (r *Recorder) NodeAllocated(id NodeID, _ Item) {
	r.ids = append(r.ids, id)
}

// Nodes returns the recorded ids in allocation order.
func (r *Recorder) Nodes() []NodeID {
	return r.ids
}

// Len returns the number of recorded nodes.
func (r *Recorder) Len() int {
	return len(r.ids)
}
