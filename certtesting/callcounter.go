package certtesting

import "sync"

// CallCounter counts method calls on test doubles.
type CallCounter struct {
	mu          sync.Mutex
	methodCalls map[string]int
}

func (r *CallCounter) IncMethodCall(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.methodCalls == nil {
		r.methodCalls = make(map[string]int)
	}
	r.methodCalls[name]++
	return r.methodCalls[name]
}

func (r *CallCounter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methodCalls = make(map[string]int)
}

func (r *CallCounter) MethodCallCount(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.methodCalls[name]
}
