package core

import "sync"

// RequestState tracks generation requests that are still awaiting a response.
type RequestState struct {
	mu        sync.RWMutex
	inFlight  map[string]int // per tool
	total     int
	lastError error
}

func NewRequestState() *RequestState {
	return &RequestState{
		inFlight: make(map[string]int),
	}
}

// Begin records a request for tool and returns the total in flight
func (rs *RequestState) Begin(tool string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.inFlight[tool]++
	rs.total++
	return rs.total
}

// Finish records completion of a request for tool and returns the total still in flight
func (rs *RequestState) Finish(tool string, err error) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.inFlight[tool] > 0 {
		rs.inFlight[tool]--
		rs.total--
	}
	if rs.inFlight[tool] == 0 {
		delete(rs.inFlight, tool)
	}
	if err != nil {
		rs.lastError = err
	}
	return rs.total
}

func (rs *RequestState) InFlight(tool string) int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.inFlight[tool]
}

func (rs *RequestState) Total() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.total
}

func (rs *RequestState) GetLastError() error {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lastError
}
