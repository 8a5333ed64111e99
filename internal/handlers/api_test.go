package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uygardev/vehicle-maintenance/internal/models"
	"github.com/uygardev/vehicle-maintenance/internal/prediction"
)

// testAPI wires the handlers to in-memory collections behind the same routes
// the server registers, authenticated as user-1.
type testAPI struct {
	vehicles    *fakeVehicles
	services    *fakeServices
	predictions *PredictionHandler
	handler     http.Handler
}

func newTestAPI() *testAPI {
	vehicles := &fakeVehicles{}
	services := &fakeServices{}

	vehicleHandler := NewVehicleHandler(vehicles)
	serviceHandler := NewServiceHandler(vehicles, services)
	predictionHandler := NewPredictionHandler(vehicles, services, prediction.NewEngine(prediction.DefaultRules()))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles/{vehicleID}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{vehicleID}", vehicleHandler.Update)
	mux.HandleFunc("DELETE /api/vehicles/{vehicleID}", vehicleHandler.Delete)
	mux.HandleFunc("GET /api/vehicles/{vehicleID}/services", serviceHandler.List)
	mux.HandleFunc("POST /api/vehicles/{vehicleID}/services", serviceHandler.Create)
	mux.HandleFunc("PUT /api/services/{serviceID}", serviceHandler.Update)
	mux.HandleFunc("DELETE /api/services/{serviceID}", serviceHandler.Delete)
	mux.HandleFunc("GET /api/vehicles/{vehicleID}/predictions", predictionHandler.Get)

	claims := &models.Claims{UserID: "user-1", Email: "demo@example.com"}
	return &testAPI{
		vehicles:    vehicles,
		services:    services,
		predictions: predictionHandler,
		handler:     withClaims(mux, claims),
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
