package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cryptoboard/src/analysis"
	"cryptoboard/src/config"
	"cryptoboard/src/dashboard"
	"cryptoboard/src/export"
	"cryptoboard/src/helpers"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"
	"cryptoboard/src/storage"

	"github.com/gorilla/websocket"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu   sync.Mutex
	rows map[string][]models.MRawRate
	errs map[string]error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) GetHistoricRates(ctx context.Context, symbol string, granularity int) ([]models.MRawRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.rows[symbol], nil
}

func newTestServer(t *testing.T, errs map[string]error) *DashboardServer {
	t.Helper()
	src := &fakeSource{
		rows: map[string][]models.MRawRate{
			"BTC-USD": {{60, 9, 11, 9, 10, 4}, {0, 8, 10, 9, 9, 0}},
			"ETH-USD": {{0, 1900, 2100, 2000, 2050, 3}},
			"ETH-BTC": {{60, 0.05, 0.06, 0.05, 0.055, 10}, {0, 0.04, 0.05, 0.045, 0.05, 20}},
		},
		errs: errs,
	}
	cfg := config.Default().MConfig
	log := logger.NewLoggerTo(io.Discard, "ERROR", "test")
	dash := dashboard.NewDashboard(cfg, src, analysis.NewAnalysisFacade(log), log)

	s := NewDashboardServer(cfg, dash, storage.NewNoopStore(), log)
	t.Cleanup(func() { s.Stop(context.Background()) })
	return s
}

func get(t *testing.T, s *DashboardServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.MErrorMessage {
	t.Helper()
	var msg models.MErrorMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	return msg
}

// -----------------------------------------------------------------------------

func TestGetDashboard(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s, "/api/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SKM's Cryptoboard", body["title"])

	primary := body["primary"].(map[string]any)
	table := primary["table"].([]any)
	require.Len(t, table, 2)
	first := table[0].(map[string]any)
	assert.Nil(t, first["vwap"], "zero cumulative volume renders as null")
	assert.Equal(t, 1.0, table[1].(map[string]any)["change"])

	cross := body["cross"].(map[string]any)
	assert.Equal(t, "ETH-BTC", cross["base"])
}

func TestGetPrimaryWithQuery(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s, "/api/primary?symbol=ETH-USD&granularity=3600")
	require.Equal(t, http.StatusOK, w.Code)

	var panel models.MPrimaryPanel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &panel))
	assert.Equal(t, "ETH-USD", panel.Symbol)
	assert.Equal(t, 3600, panel.Granularity)
	require.Len(t, panel.Table, 1)
	assert.Equal(t, models.MFloat(50), panel.Table[0].Change)
	assert.Equal(t, "ETH-USD", panel.Figure.Layout.Title.Text)
}

func TestGetPrimaryBadGranularity(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s, "/api/primary?granularity=daily")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "granularity")
}

func TestProviderRejectionIsBadRequest(t *testing.T) {
	s := newTestServer(t, map[string]error{
		"NOPE-USD": helpers.NewProviderRejectedParametersError("NotFound", 404),
	})
	w := get(t, s, "/api/primary?symbol=NOPE-USD")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	msg := decodeError(t, w)
	assert.Equal(t, "ERROR", msg.Type)
	assert.Equal(t, "NotFound", msg.Message)
}

func TestProviderFailureIsBadGateway(t *testing.T) {
	s := newTestServer(t, map[string]error{
		"BTC-USD": helpers.NewProviderRequestError("coinbase candles request for BTC-USD", 503, nil),
	})
	w := get(t, s, "/api/cross")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decodeError(t, w).Message, "BTC-USD")

	assert.Equal(t, http.StatusBadGateway, get(t, s, "/api/dashboard").Code)
	assert.Equal(t, 2, s.Errors.ErrorCount())
}

func TestGetPage(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "Cryptoboard")
	assert.Contains(t, html, `id="primary-chart"`)
	assert.Contains(t, html, "ETH-BTC Volume")
	assert.Contains(t, html, "Market data provided by the Coinbase Exchange public API.")
	assert.Contains(t, html, "OHLC bars for each 1d interval")
}

func TestGetPageShowsProviderError(t *testing.T) {
	s := newTestServer(t, map[string]error{
		"ETH-BTC": helpers.NewProviderRejectedParametersError("Unsupported granularity", 400),
	})
	w := get(t, s, "/")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported granularity")
	assert.NotContains(t, w.Body.String(), "Plotly.newPlot")
}

func TestExportPrimary(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s, "/api/export/primary.parquet")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, parquetContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "BTC-USD_86400.parquet")

	rows, err := parquet.Read[export.PrimaryRow](bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].VWAP)
}

func TestExportCross(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s, "/api/export/cross.parquet?granularity=60")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ETH-BTC_usd_volume_60.parquet")

	rows, err := parquet.Read[export.CrossRow](bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSnapshotsWithoutStorage(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/api/snapshots")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"snapshots": []}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/snapshots/01HX").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/snapshots?limit=-1").Code)
}

func TestHealthAndConfig(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, 0.0, health["connections"])
	assert.NotContains(t, health, "archive")

	w = get(t, s, "/api/config")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"1d"`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://127.0.0.1:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

// -----------------------------------------------------------------------------

func dialWS(t *testing.T, s *DashboardServer) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestWebSocketRender(t *testing.T) {
	s := newTestServer(t, map[string]error{
		"NOPE-USD": helpers.NewProviderRejectedParametersError("NotFound", 404),
	})
	conn := dialWS(t, s)

	require.NoError(t, conn.WriteJSON(models.MRenderCommand{Command: "render", Panel: "primary"}))
	var resp struct {
		Type string               `json:"type"`
		Data models.MPrimaryPanel `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "PRIMARY", resp.Type)
	assert.Equal(t, "BTC-USD", resp.Data.Symbol)
	assert.Len(t, resp.Data.Table, 2)

	require.NoError(t, conn.WriteJSON(models.MRenderCommand{Command: "render", Panel: "primary", Symbol: "NOPE-USD"}))
	var errMsg models.MErrorMessage
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, "ERROR", errMsg.Type)
	assert.Equal(t, "NotFound", errMsg.Message)

	require.NoError(t, conn.WriteJSON(map[string]string{"command": "subscribe"}))
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Contains(t, errMsg.Message, "unknown command")
}

func TestWebSocketFullDashboard(t *testing.T) {
	s := newTestServer(t, nil)
	conn := dialWS(t, s)

	require.NoError(t, conn.WriteJSON(models.MRenderCommand{Command: "render"}))
	var resp struct {
		Type string            `json:"type"`
		Data models.MDashboard `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "DASHBOARD", resp.Type)
	assert.Equal(t, "ETH-BTC", resp.Data.Cross.Base)
	assert.Eventually(t, func() bool { return s.connectionCount() == 1 }, time.Second, 10*time.Millisecond)
}
