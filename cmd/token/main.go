// Command token mints a signed actor token for calling the portal locally.
//
//	go run ./cmd/token -role lecturer -id l1 -name "Dr. Thabo Mokoena"
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"campus-portal-api/internal/auth"
	"campus-portal-api/internal/model"
)

func main() {
	_ = godotenv.Load()
	role := flag.String("role", "student", "student, lecturer or admin")
	id := flag.String("id", "", "actor id")
	name := flag.String("name", "", "display name")
	number := flag.String("number", "", "student or staff number")
	faculty := flag.String("faculty", "", "faculty")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	a, err := model.NewActor(model.Role(*role), *id, *name, *number, *faculty)
	if err != nil {
		log.Fatalf("actor: %v", err)
	}
	tok, err := auth.MakeToken(a, secret, *ttl)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Println(tok)
}
