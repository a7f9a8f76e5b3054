// Package services implements the business logic layer between the
// HTTP handlers and the data loader. Handlers stay thin: they decode
// requests and render responses, while the services here own the
// metric computation, review workflow and export logic.
//
// # Available Services
//
//	- DashboardService: computes every dashboard metric from the
//	  cached dataset and owns the review overlay
//	- ReportService: writes CSV exports to the reports directory
//	- HealthService: reports source configuration and cache state
//
// Services take context.Context on every data-touching method so
// request cancellation propagates down to the source fetches.
package services
