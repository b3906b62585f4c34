package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONWithComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	var buf bytes.Buffer
	require.NoError(t, Setup(Config{Level: "debug", Format: "json", Output: &buf}))

	l := WithComponent("http")
	l.Info().Msg("hello")

	require.Contains(t, buf.String(), `"component":"http"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}

func TestSetup_InvalidLevel(t *testing.T) {
	require.Error(t, Setup(Config{Level: "loud"}))
}
