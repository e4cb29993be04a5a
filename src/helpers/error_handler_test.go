package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cryptoboard/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	rejected := NewProviderRejectedParametersError("Unsupported granularity", 400)
	request := NewProviderRequestError("candles request failed", 0, errors.New("dial tcp: refused"))

	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(rejected))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(request))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(fmt.Errorf("fetch BTC-USD: %w", request)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestProviderErrorsUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := error(NewProviderRequestError("candles request failed", 0, cause))

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "candles request failed: timeout", err.Error())

	rejected := NewProviderRejectedParametersError("NotFound", 404)
	assert.Equal(t, "NotFound", rejected.Error())
	assert.Nil(t, rejected.Unwrap())
}

func TestErrorHandlerCounts(t *testing.T) {
	var buf bytes.Buffer
	h := NewErrorHandler(logger.NewLoggerTo(&buf, "INFO", "test"))

	h.Handle(nil, "noop")
	h.Handle(errors.New("bad"), "render")
	assert.Equal(t, 1, h.ErrorCount())
	assert.Contains(t, buf.String(), "Error in render: bad")

	h.ResetErrorCount()
	assert.Zero(t, h.ErrorCount())
}
