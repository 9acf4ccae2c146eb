package elastic_client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectSkippedWhenUnconfigured(t *testing.T) {
	t.Setenv("RAILACCESS_ELASTICSEARCH_ADDRESS", "")

	assert.NoError(t, Connect(false))
	assert.Nil(t, Client)
}

func TestConnectRequired(t *testing.T) {
	t.Setenv("RAILACCESS_ELASTICSEARCH_ADDRESS", "")

	assert.ErrorIs(t, Connect(true), ErrNotConfigured)
}

func TestIndexRequestWithoutClient(t *testing.T) {
	Client = nil

	assert.NotPanics(t, func() {
		IndexRequest("railaccess-cells-1", strings.NewReader("{}"))
		WaitUntilQueueEmpty()
	})
}
