package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/places/api/pkg/jwt"
)

func main() {
	// Flags for customization
	secret := flag.String("secret", "supersecret_dont_share", "JWT signing secret")
	userID := flag.String("user", "user:devuser", "User ID for the token")
	email := flag.String("email", "dev@places.dev", "Email for the token")
	issuer := flag.String("issuer", "places.forgo.software", "JWT issuer")
	expMins := flag.Int("exp", 60, "Token expiration in minutes")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         *secret,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		os.Exit(1)
	}

	claims := jwt.Claims{
		Subject: *userID,
		UserID:  *userID,
		Email:   *email,
	}

	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"email":        *email,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Println("Dev Token Generated")
		fmt.Println("===================")
		fmt.Printf("User ID:  %s\n", *userID)
		fmt.Printf("Email:    %s\n", *email)
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -H 'Authorization: Bearer %s' -X DELETE http://localhost:5001/api/places/place:example\n", token[:50]+"...")
	}
}
