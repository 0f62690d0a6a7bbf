package execx

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation seen by a StubRunner.
type Call struct {
	Name string
	Args []string
	Dir  string
}

// StubRunner is a Runner for tests. Responses are keyed by the full command
// line ("npm view typescript version --json"); unmatched commands return
// Fallback. It is safe for concurrent use.
type StubRunner struct {
	mu        sync.Mutex
	Responses map[string]StubResponse
	Fallback  StubResponse
	Calls     []Call
}

// StubResponse is the canned outcome of a stubbed command.
type StubResponse struct {
	Result Result
	Err    error
}

// Run records the call and returns the configured response.
func (s *StubRunner) Run(_ context.Context, name string, args []string, opts Opts) (Result, error) {
	call := Call{Name: name, Args: append([]string(nil), args...), Dir: opts.Dir}

	s.mu.Lock()
	s.Calls = append(s.Calls, call)
	resp, ok := s.Responses[commandLine(name, args)]
	if !ok {
		resp = s.Fallback
	}
	s.mu.Unlock()

	return resp.Result, resp.Err
}

// CallsTo returns the recorded calls whose binary name matches.
func (s *StubRunner) CallsTo(name string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// String renders a call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(commandLine(c.Name, c.Args))
}
