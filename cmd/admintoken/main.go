// Command admintoken prints a signed admin token for the protected
// endpoints, using ADMIN_JWT_SECRET from the environment or .env.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/pkg/auth"
)

func main() {
	subject := flag.String("sub", "owner", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logging.Setup("INFO")
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	token, err := auth.IssueToken(*subject, []byte(cfg.AdminJWTSecret), *ttl)
	if err != nil {
		logging.Fatal("issue token failed", "error", err)
	}
	fmt.Println(token)
}
