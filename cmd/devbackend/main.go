// Command devbackend serves the documents, versions and labels API from
// memory. Point BACKEND_URL at it to run the gateway and resumectl locally.
package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/devbackend"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/tokens"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/middleware"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("DEV_BACKEND_PORT")
	if port == "" {
		port = "8001"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	var ver middleware.Verifier
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		ver = tokens.NewVerifier(secret)
	} else {
		logger.Warnf("JWT_SECRET not set; every request acts as %q", devbackend.DevUser)
	}
	devbackend.RegisterRoutes(r, devbackend.New(), ver)

	logger.Infof("devbackend listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
