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
	"github.com/gin-gonic/gin"

	"github.com/leadpool/leadpool"
	"github.com/leadpool/leadpool/api/middleware"
	"github.com/leadpool/leadpool/config"
)

type Api struct {
	leadpool *leadpool.Leadpool
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/pools/generate", a.GeneratePool)
	router.GET("/pools/:period", a.GetPoolSummary)

	router.POST("/distributions/run", a.RunDistribution)
	router.GET("/distributions/:period", a.GetDistributions)

	router.POST("/subscribers", a.CreateSubscriber)
	router.GET("/subscribers/:id", a.GetSubscriber)
	router.POST("/subscribers/:id/sequential-assignments", a.AssignSequential)
	router.GET("/subscribers/:id/assignments", a.GetAssignments)

	router.POST("/leads", a.CreateLead)
	router.POST("/leads/bulk", a.BulkCreateLeads)
	router.GET("/leads/:id", a.GetLead)

	router.GET("/runway", a.GetRunway)
	return a.router
}

func NewAPI(l *leadpool.Leadpool) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}
	r.Use(middleware.RateLimitMiddleware(conf))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{leadpool: l, router: r}
}
