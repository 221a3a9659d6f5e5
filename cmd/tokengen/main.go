// Command tokengen mints a bearer token for local calls to the API.
//
//	JWT_SECRET=dev go run ./cmd/tokengen --id 1 --name Ana --permission 1
package main

import (
	"fmt"
	"os"
	"time"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/core/application/authz"

	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
)

func main() {
	var (
		id         = pflag.String("id", "", "principal id")
		name       = pflag.String("name", "", "principal name")
		permission = pflag.Int("permission", int(authz.Employee), "1 for owner, 2 for employee")
		ttl        = pflag.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
		secret     = pflag.String("secret", os.Getenv("JWT_SECRET"), "signing secret")
	)
	pflag.Parse()

	if *secret == "" {
		log.Fatal("signing secret is empty: set JWT_SECRET or --secret")
	}

	principal := authz.Principal{ID: *id, Name: *name, Permission: authz.Permission(*permission)}
	token, err := httpin.NewTokenVerifier(*secret).Issue(principal, *ttl, time.Now())
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}
