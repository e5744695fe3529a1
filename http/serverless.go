package http

import (
	"net/http"
	"os"
	"sync"

	"github.com/TM9657/flowdoc/config"
	"github.com/TM9657/flowdoc/utils"
)

var (
	initServerless sync.Once
	initErr        error
	serverlessSrv  *Server
)

// ServerlessHandler is the minimal serverless entry point for the document API.
// Dependencies are initialized once per instance from environment variables.
func ServerlessHandler(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	initServerless.Do(func() {
		cfg := config.DefaultConfig()
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			cfg.Storage.Driver = "postgres"
			cfg.Storage.DSN = dsn
		} else {
			// No writable disk assumed in serverless environments
			cfg.Storage.Driver = "memory"
		}
		serverlessSrv, initErr = NewServer(cfg)
		if initErr != nil {
			utils.Error("serverless init failed: %v", initErr)
		}
	})
	if initErr != nil || serverlessSrv == nil {
		utils.WriteHTTPError(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	serverlessSrv.Handler().ServeHTTP(w, r)
}
