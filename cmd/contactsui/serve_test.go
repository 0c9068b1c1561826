package main

import (
	"testing"

	"contactsui/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestAPIClientOptions(t *testing.T) {
	t.Run("should use the configured host without a client timeout", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.API.Host = "https://contacts.example.com"

		opts := apiClientOptions(cfg)

		assert.Equal(t, "https://contacts.example.com", opts.Host)
		assert.Nil(t, opts.HTTPClient)
	})
}
