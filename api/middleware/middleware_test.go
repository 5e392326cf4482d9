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
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/leadpool/leadpool/config"
)

func TestSecretKeyAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		secretKey     string
		clientKey     string
		expectedCode  int
		expectedError string
	}{
		{
			name:         "Valid secret key",
			secretKey:    "master-key",
			clientKey:    "master-key",
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid secret key",
			secretKey:     "master-key",
			clientKey:     "wrong-key",
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid secret key",
		},
		{
			name:          "Missing secret key",
			secretKey:     "master-key",
			clientKey:     "",
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Missing secret key",
		},
		{
			name:          "Secret key not configured",
			secretKey:     "",
			clientKey:     "anything",
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Secret key is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ConfigStore.Store(&config.Configuration{
				Server: config.ServerConfig{
					Secure:    true,
					SecretKey: tt.secretKey,
				},
			})

			router := gin.New()
			router.GET("/runway", SecretKeyAuthMiddleware(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/runway", nil)
			if tt.clientKey != "" {
				req.Header.Set("X-Leadpool-Key", tt.clientKey)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conf := &config.Configuration{}
	router := gin.New()
	router.GET("/runway", RateLimitMiddleware(conf), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/runway", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_Limits(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rps := 1.0
	burst := 1
	cleanup := 60
	conf := &config.Configuration{
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond:  &rps,
			Burst:              &burst,
			CleanupIntervalSec: &cleanup,
		},
	}

	router := gin.New()
	router.GET("/runway", RateLimitMiddleware(conf), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	limited := false
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/runway", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	assert.True(t, limited)
}
