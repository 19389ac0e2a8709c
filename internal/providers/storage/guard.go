package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/resilience"
)

// Guard routes calls through a circuit breaker so a broken disk is not hit on every request
type Guard struct {
	store   Store
	breaker *resilience.Breaker
}

// NewGuard wraps store. Absent keys, invalid keys and cancelled or expired
// contexts never trip the breaker.
func NewGuard(store Store, settings resilience.Settings) *Guard {
	settings.IsFailure = isStorageFailure
	return &Guard{
		store:   store,
		breaker: resilience.New("storage", settings),
	}
}

func isStorageFailure(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidKey),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// Breaker exposes the underlying breaker
func (g *Guard) Breaker() *resilience.Breaker {
	return g.breaker
}

func (g *Guard) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := g.breaker.Do(func() error {
		var err error
		data, err = g.store.Get(ctx, key)
		return err
	})
	return data, wrapOpen(err)
}

func (g *Guard) Set(ctx context.Context, key string, value []byte) error {
	return wrapOpen(g.breaker.Do(func() error {
		return g.store.Set(ctx, key, value)
	}))
}

func (g *Guard) Remove(ctx context.Context, key string) error {
	return wrapOpen(g.breaker.Do(func() error {
		return g.store.Remove(ctx, key)
	}))
}

func (g *Guard) Close() error {
	return g.store.Close()
}

func wrapOpen(err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("storage unavailable: %w", err)
	}
	return err
}
