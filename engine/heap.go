package engine

// Heap is the opaque scratch space threaded through a Walk. Resource
// authors stash whatever a later callback needs to see here: a
// decoded request body, a loaded domain object, a flag set by one
// predicate and read by another.
type Heap map[string]interface{}

// callbacksKey is the reserved Heap entry under which the Heap that
// seeds a Walk carries the CallbackMap in effect for it. Transitions
// read callbacks from here rather than from a field on Handler so
// that a Walk's entire state — callbacks included — is the single
// value threaded step to step, matching the source's heap-carries-
// everything convention.
const callbacksKey = "callbacks"

// clone makes a shallow copy of h. Callbacks are handed a clone, not
// h itself, so a callback that mutates the map it was given can never
// corrupt the Heap a concurrent step elsewhere might still be reading;
// the only way a callback affects the Walk's Heap is by returning a
// replacement (see CallbackResult.Heap).
func (h Heap) clone() Heap {
	c := make(Heap, len(h))
	for k, v := range h {
		c[k] = v
	}
	return c
}

func (h Heap) callbackMap() CallbackMap {
	cm, _ := h[callbacksKey].(CallbackMap)
	return cm
}

func newHeap(cm CallbackMap) Heap {
	return Heap{callbacksKey: cm}
}
