package cmd

import (
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/mhodgson/phone-catalog-tracker/internal/config"
)

func TestConfigureServer(t *testing.T) {
	t.Parallel()

	e := echo.New()
	configureServer(e, config.ServerConfig{
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 90 * time.Second,
	})

	assert.True(t, e.HideBanner)
	assert.True(t, e.HidePort)
	assert.Equal(t, 45*time.Second, e.Server.ReadTimeout)
	assert.Equal(t, 90*time.Second, e.Server.WriteTimeout)
}
