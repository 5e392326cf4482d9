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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	model2 "github.com/leadpool/leadpool/api/model"
	"github.com/leadpool/leadpool/internal/apierror"
	"github.com/leadpool/leadpool/model"
)

func (a Api) GeneratePool(c *gin.Context) {
	// An empty body targets the current period.
	var req model2.GeneratePool
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
			return
		}
	}

	if err := req.ValidateGeneratePool(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	period := req.Period
	if period == "" {
		period = model.CurrentPeriod(time.Now())
	}

	resp, err := a.leadpool.GeneratePool(c.Request.Context(), period)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if resp.Created {
		c.JSON(http.StatusCreated, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a Api) GetPoolSummary(c *gin.Context) {
	period, passed := c.Params.Get("period")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period is required. pass period in the route /:period"})
		return
	}

	resp, err := a.leadpool.GetPoolSummary(c.Request.Context(), period)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) GetRunway(c *gin.Context) {
	resp, err := a.leadpool.QueueRunway(c.Request.Context())
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
