/*
Package resilience provides a circuit breaker for graceful degradation.

# Overview

The breaker guards calls to the durable key-value store. When storage keeps
failing (disk full, database locked, directory not writable) the breaker
opens and callers skip storage entirely for a cooldown period, so the
history silently degrades to in-memory only instead of paying for every
failing write.

# Usage

	breaker := resilience.New("storage", resilience.Settings{
		Threshold: 3,
		Cooldown:  30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("breaker state changed", zap.Stringer("to", to))
		},
	})

	err := breaker.Do(func() error {
		return store.Set(ctx, key, value)
	})

OnStateChange runs with the breaker locked and must not call back into it.

# States

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[Probes successes]-> Closed
	                                                        |
	                                                    [failure]
	                                                        v
	                                                       Open
*/
package resilience
