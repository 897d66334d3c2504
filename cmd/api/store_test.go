package main

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loginapi/login-service/internal/infrastructure/db/memory"
	"github.com/loginapi/login-service/internal/pkg/config"
)

func TestOpenStores_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}

	s, err := openStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.UserRepository{}, s.users)
	assert.Empty(t, s.checks)
	assert.Empty(t, s.closers)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}

	_, err := openStores(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestStores_CloseReverseOrder(t *testing.T) {
	var order []string
	s := &stores{closers: []func(context.Context) error{
		func(context.Context) error { order = append(order, "postgres"); return nil },
		func(context.Context) error { order = append(order, "redis"); return errors.New("already closed") },
	}}

	s.close(context.Background(), zerolog.Nop())
	assert.Equal(t, []string{"redis", "postgres"}, order)
}
