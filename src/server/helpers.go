package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cryptoboard/src/helpers"
	"cryptoboard/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// granularityParam reads ?granularity=, falling back to def when absent.
func granularityParam(c *gin.Context, def int) (int, error) {
	raw := c.Query("granularity")
	if raw == "" {
		return def, nil
	}
	g, err := strconv.Atoi(raw)
	if err != nil || g <= 0 {
		return 0, fmt.Errorf("granularity must be a positive number of seconds, got %q", raw)
	}
	return g, nil
}

// -----------------------------------------------------------------------------

// primaryParams resolves the primary panel pair from the query string.
func (s *DashboardServer) primaryParams(c *gin.Context) (string, int, error) {
	p := s.Config.Dashboard.Primary
	g, err := granularityParam(c, p.Granularity)
	if err != nil {
		return "", 0, err
	}
	return c.DefaultQuery("symbol", p.Symbol), g, nil
}

// crossParams resolves the base/quote pairs from the query string.
func (s *DashboardServer) crossParams(c *gin.Context) (string, string, int, error) {
	cp := s.Config.Dashboard.Cross
	g, err := granularityParam(c, cp.Granularity)
	if err != nil {
		return "", "", 0, err
	}
	return c.DefaultQuery("base", cp.Base), c.DefaultQuery("quote", cp.Quote), g, nil
}

// -----------------------------------------------------------------------------

// errorMessage returns the text shown to the user. Rejected parameters keep
// the provider's message verbatim.
func errorMessage(err error) string {
	var rejected *helpers.ProviderRejectedParametersError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return err.Error()
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) abortWithError(c *gin.Context, err error, where string) {
	status := helpers.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.Errors.Handle(err, where)
	} else {
		s.Logger.Warning("%s: %v", where, err)
	}
	c.AbortWithStatusJSON(status, models.MErrorMessage{Type: "ERROR", Message: errorMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.MErrorMessage{Type: "ERROR", Message: err.Error()})
}
