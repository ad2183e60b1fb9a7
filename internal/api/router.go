// Package api wires the job handlers, metrics and API docs onto the router.
package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"go-quote-pipeline/internal/api/docs"
	"go-quote-pipeline/internal/api/handler"
	"go-quote-pipeline/pkg/router"
)

// RegisterRoutes mounts the job API. metrics may be nil to skip /metrics.
func RegisterRoutes(r *router.Router, h *handler.Handler, metrics http.Handler) {
	r.POST("/api/v1/jobs", h.CreateJob)
	r.GET("/api/v1/jobs", h.ListJobs)
	// More specific routes first
	r.GET("/api/v1/jobs/*/errors", h.GetJobErrors)
	r.GET("/api/v1/jobs/*/outputs", h.GetJobOutputs)
	// Generic job route last
	r.GET("/api/v1/jobs/*", h.GetJob)

	if metrics != nil {
		r.Handle(http.MethodGet, "/metrics", metrics)
	}
	r.Handle(http.MethodGet, "/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))
}
