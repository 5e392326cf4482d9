/*
Copyright 2025 Leadpool Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpool/leadpool"
	model2 "github.com/leadpool/leadpool/api/model"
	"github.com/leadpool/leadpool/config"
	"github.com/leadpool/leadpool/internal/request"
	"github.com/leadpool/leadpool/model"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	err := json.NewDecoder(resp.Body).Decode(&s.Response)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func setupRouter() (*gin.Engine, *leadpool.Leadpool, error) {
	config.MockConfig(&config.Configuration{
		Redis:      config.RedisConfig{Dns: "localhost:6379"},
		DataSource: config.DataSourceConfig{Dns: "postgres://postgres:@localhost:5432/leadpool?sslmode=disable"},
	})
	lp, err := leadpool.NewLeadpool(leadpool.NewMockDataSource())
	if err != nil {
		return nil, nil, err
	}
	lp.WithSelectionStrategy(leadpool.NewSeededSelection(42))
	router := NewAPI(lp).Router()

	return router, lp, nil
}

func ingestLeads(t *testing.T, router *gin.Engine, n int) {
	t.Helper()
	leads := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		leads = append(leads, map[string]interface{}{
			"name":  gofakeit.Name(),
			"email": gofakeit.Email(),
		})
	}
	payloadBytes, _ := request.ToJsonReq(&model2.BulkCreateLeads{
		Leads:       leads,
		UploadBatch: gofakeit.UUID(),
	})
	var response []model.Lead
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &response,
		Method:   "POST",
		Route:    "/leads/bulk",
		Router:   router,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Len(t, response, n)
}

func TestGeneratePoolAPI(t *testing.T) {
	router, _, err := setupRouter()
	require.NoError(t, err)

	ingestLeads(t, router, 20)

	payloadBytes, _ := request.ToJsonReq(&model2.GeneratePool{Period: "2025-06"})
	var response model.PoolResult
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &response,
		Method:   "POST",
		Route:    "/pools/generate",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.True(t, response.Created)
	assert.Equal(t, 20, response.Count)

	// A repeat call is a no-op and reports the existing pool.
	payloadBytes, _ = request.ToJsonReq(&model2.GeneratePool{Period: "2025-06"})
	var secondResponse model.PoolResult
	resp, err = SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &secondResponse,
		Method:   "POST",
		Route:    "/pools/generate",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, secondResponse.Created)
	assert.Equal(t, 20, secondResponse.Count)
}

func TestGeneratePoolAPI_InvalidPeriod(t *testing.T) {
	router, _, err := setupRouter()
	require.NoError(t, err)

	payloadBytes, _ := request.ToJsonReq(&model2.GeneratePool{Period: "June 2025"})
	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &response,
		Method:   "POST",
		Route:    "/pools/generate",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetPoolSummaryAPI(t *testing.T) {
	router, lp, err := setupRouter()
	require.NoError(t, err)

	ingestLeads(t, router, 5)
	_, err = lp.GeneratePool(context.Background(), "2025-06")
	require.NoError(t, err)

	var response model.PoolResult
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    "/pools/2025-06",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 5, response.Count)

	var missing map[string]interface{}
	resp, err = SetUpTestRequest(TestRequest{
		Response: &missing,
		Method:   "GET",
		Route:    "/pools/2025-07",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRunDistributionAPI(t *testing.T) {
	router, lp, err := setupRouter()
	require.NoError(t, err)

	// No pool yet for the period.
	payloadBytes, _ := request.ToJsonReq(&model2.RunDistribution{Period: "2025-06"})
	var errResponse map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &errResponse,
		Method:   "POST",
		Route:    "/distributions/run",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, resp.Code)

	ingestLeads(t, router, 20)
	_, err = lp.GeneratePool(context.Background(), "2025-06")
	require.NoError(t, err)
	_, err = lp.SyncSubscriber(context.Background(), model.Subscriber{
		SubscriberID: "sub_api",
		PlanTier:     model.TierStarter,
		Status:       model.StatusActive,
	})
	require.NoError(t, err)

	payloadBytes, _ = request.ToJsonReq(&model2.RunDistribution{Period: "2025-06"})
	var response model.DistributionResult
	resp, err = SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &response,
		Method:   "POST",
		Route:    "/distributions/run",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 2, response.TotalDistributed)

	var entries []model.DistributionEntry
	resp, err = SetUpTestRequest(TestRequest{
		Response: &entries,
		Method:   "GET",
		Route:    "/distributions/2025-06",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, entries, 2)
}

func TestRunwayAPI(t *testing.T) {
	router, _, err := setupRouter()
	require.NoError(t, err)

	var response model.RunwayReport
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    "/runway",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, model.RunwayCritical, response.Status)
}

func TestCreateLeadAPI_MissingContact(t *testing.T) {
	router, _, err := setupRouter()
	require.NoError(t, err)

	payloadBytes, _ := request.ToJsonReq(&model2.CreateLead{UploadBatch: gofakeit.UUID()})
	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payloadBytes,
		Response: &response,
		Method:   "POST",
		Route:    "/leads",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetLeadAPI(t *testing.T) {
	router, lp, err := setupRouter()
	require.NoError(t, err)

	lead, err := lp.IngestLead(context.Background(), map[string]interface{}{"name": gofakeit.Name()}, "batch-1")
	require.NoError(t, err)

	var response model.Lead
	resp, err := SetUpTestRequest(TestRequest{
		Response: &response,
		Method:   "GET",
		Route:    fmt.Sprintf("/leads/%s", lead.LeadID),
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, lead.LeadID, response.LeadID)

	var missing map[string]interface{}
	resp, err = SetUpTestRequest(TestRequest{
		Response: &missing,
		Method:   "GET",
		Route:    "/leads/lea_missing",
		Router:   router,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
