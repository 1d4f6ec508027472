package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solacehealth/solace/internal/config"
	"github.com/solacehealth/solace/internal/pipeline"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.LoadDefault()
	return setupRouter(newAppState(zap.NewNop()))
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	rec := doJSON(router, http.MethodPost, "/auth/login", "", gin.H{"email": email})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func startSession(t *testing.T, router *gin.Engine, token string) string {
	t.Helper()

	rec := doJSON(router, http.MethodPost, "/session/start", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp.SessionID, "session_"))
	return resp.SessionID
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/session/start", "/ai/respond", "/health/ingest"} {
		rec := doJSON(router, http.MethodPost, path, "", gin.H{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(router, http.MethodPost, "/session/start", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMediumRiskMessageGetsGeneratedReply(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")
	sessionID := startSession(t, router, token)

	rec := doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{
		"session_id": sessionID,
		"message":    "I feel hopeless",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Response string `json:"response"`
		RiskTier string `json:"risk_tier"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "medium", resp.RiskTier)
	assert.NotEmpty(t, resp.Response)
	assert.NotEqual(t, pipeline.CalmingMessage, resp.Response)
}

func TestHighRiskMessageGetsExactCalmingReply(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")
	sessionID := startSession(t, router, token)

	rec := doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{
		"session_id": sessionID,
		"message":    "sometimes I think about suicide",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Response string `json:"response"`
		RiskTier string `json:"risk_tier"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "high", resp.RiskTier)
	assert.Equal(t, pipeline.CalmingMessage, resp.Response)
}

func TestRespondSessionScoping(t *testing.T) {
	router := newTestRouter(t)
	owner := login(t, router, "owner@example.com")
	intruder := login(t, router, "intruder@example.com")
	sessionID := startSession(t, router, owner)

	rec := doJSON(router, http.MethodPost, "/ai/respond", intruder, gin.H{
		"session_id": sessionID,
		"message":    "hello",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodPost, "/ai/respond", owner, gin.H{
		"session_id": "session_missing",
		"message":    "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionEndStopsFurtherUse(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")
	sessionID := startSession(t, router, token)

	rec := doJSON(router, http.MethodPost, "/session/end", token, gin.H{"session_id": sessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{
		"session_id": sessionID,
		"message":    "hello again",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSessionReplacesPrevious(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")

	first := startSession(t, router, token)
	second := startSession(t, router, token)
	require.NotEqual(t, first, second)

	rec := doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{
		"session_id": first,
		"message":    "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, "first session should be gone")

	rec = doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{
		"session_id": second,
		"message":    "hello",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVoiceProcessReturnsWav(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")
	sessionID := startSession(t, router, token)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("session_id", sessionID))
	part, err := writer.CreateFormFile("audio", "input.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/voice/process", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("RIFF")))
}

func TestHealthIngestFlow(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")

	ingest := func(body gin.H) string {
		rec := doJSON(router, http.MethodPost, "/health/ingest", token, body)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Signal string `json:"signal"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Signal
	}

	assert.Equal(t, "normal", ingest(gin.H{"source": "watch"}))
	assert.Equal(t, "baseline_set", ingest(gin.H{
		"source":    "watch",
		"heartRate": gin.H{"bpm": 70, "timestamp": 1700000000},
	}))
	assert.Equal(t, "elevated", ingest(gin.H{
		"source":    "watch",
		"heartRate": gin.H{"bpm": 90, "timestamp": 1700000060},
	}))
	assert.Equal(t, "low", ingest(gin.H{
		"source":    "phone",
		"heartRate": gin.H{"bpm": 50, "timestamp": 1700000120},
	}))
	assert.Equal(t, "normal", ingest(gin.H{
		"source":    "manual",
		"heartRate": gin.H{"bpm": 75, "timestamp": 1700000180},
	}))

	rec := doJSON(router, http.MethodPost, "/health/ingest", token, gin.H{"source": "toaster"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMe(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")

	rec := doJSON(router, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
}

func TestRespondValidation(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "ada@example.com")
	sessionID := startSession(t, router, token)

	rec := doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{"session_id": sessionID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/ai/respond", token, gin.H{"message": "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
