/*
Package resilience provides the circuit breaker that guards courier's
production transport.

A breaker counts transport outcomes per generation. After ReadyToTrip
approves a failure it opens and rejects calls with ErrCircuitOpen until
Timeout elapses, then admits up to MaxRequests probes. Enough probe
successes close it again; any probe failure reopens it.

Cancellations by the caller (context.Canceled) do not count as failures
unless Settings.IsSuccessful says otherwise.

# Usage

	breaker := resilience.New("transport", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
	})

	resp, err := resilience.Do(breaker, func() (*http.Response, error) {
		return client.Do(req)
	})

# States

	Closed --[trip]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                   ^                     |
	                   +------[failure]------+
*/
package resilience
