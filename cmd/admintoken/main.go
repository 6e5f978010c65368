// Command admintoken mints a bearer token for the /api/v1 admin endpoints
// using the same JWT_SECRET and JWT_ISSUER as the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/SscSPs/chatledger/internal/platform/config"
	"github.com/SscSPs/chatledger/internal/utils"
)

func main() {
	subject := flag.String("subject", "operator", "operator name recorded in the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	token, err := utils.GenerateJWT(*subject, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
