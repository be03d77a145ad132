package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreviews/internal/domain/storage"

	"go.uber.org/zap"
)

func newTestApplication(t *testing.T, cfg config) *application {
	t.Helper()

	if cfg.cors.allowedOrigin == "" {
		cfg.cors.allowedOrigin = "*"
	}

	return &application{
		config: cfg,
		logger: zap.NewNop().Sugar(),
		store:  storage.NewMemoryContainer(),
	}
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	return rr
}
