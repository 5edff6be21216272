package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"punchdeck.com/punchdeck/infrastructure/devops"
	"punchdeck.com/punchdeck/security"
)

// Mints an API token for local testing against the protected routes.
func main() {
	name := flag.String("name", "dev", "unique name embedded in the token")
	id := flag.Int("id", 1, "identity id")
	ttl := flag.Int64("ttl", 86400, "token lifetime in seconds")
	flag.Parse()

	cfg, err := devops.LoadAppConfig(context.Background())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		ID:         *id,
		UniqueName: *name,
		SID:        fmt.Sprintf("sid-%d", *id),
	}, cfg.SigningSecret, *ttl)
	if err != nil {
		log.Fatalf("create token: %v", err)
	}

	fmt.Println(token)
}
