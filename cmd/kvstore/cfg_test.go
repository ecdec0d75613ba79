package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCfg(t *testing.T) {
	s := NewService()

	assert.Equal(t, DefaultQueueCapacity, s.Cfg.Store.QueueCapacity)
	assert.Equal(t, DefaultAPIAddress, s.Cfg.API.Address)

	s.Cfg.API.Address = "127.0.0.1:9000"
	s.Cfg.API.LogSuccessfulRequests = true

	cfg := s.ServiceCfg()

	require.Contains(t, cfg.HTTPServers, "api")
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPServers["api"].Address)
	assert.True(t, cfg.HTTPServers["api"].LogSuccessfulRequests)
}
