// Package config provides centralized configuration for the Sapflow
// reporting service, plus the domain constants the whole system shares:
// vacuum thresholds, job-classification keyword sets, conductor
// prefixes, site coordinates, and the column alias tables.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. configs/config.yaml
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SAPFLOW_* for
// namespacing:
//
//	SAPFLOW_SERVER_PORT=8080
//	SAPFLOW_SOURCES_VACUUM_SPREADSHEET_ID=1Abc...
//	SAPFLOW_SOURCES_VACUUM_RANGE='Sheet1!A:H'
//	SAPFLOW_SOURCES_TIMESHEET_WORKBOOK_PATH=data/timesheets.xlsx
//	SAPFLOW_LOGGING_LEVEL=info
//
// A .env file in the working directory is loaded by the binaries
// before envconfig runs, so sheet IDs can live there instead of the
// shell environment.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
