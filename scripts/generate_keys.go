//go:build ignore

// generate_keys prints fresh secrets for the quote server's .env file.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading random bytes: %v\n", err)
		os.Exit(1)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func main() {
	fmt.Println("# Print quote service secrets. Append to .env, never commit.")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", randomToken(32))
	fmt.Println()
	fmt.Println("# Bootstrap staff account, created on first start")
	fmt.Println("STAFF_ADMIN_EMAIL=admin@printshop.example")
	fmt.Printf("STAFF_ADMIN_PASSWORD=%s\n", randomToken(12))
	fmt.Println()
	fmt.Println("# Used for staff routes only when no staff store is available")
	fmt.Printf("API_KEYS=%s\n", randomToken(24))
	fmt.Println()
	fmt.Println("# Protects /swagger")
	fmt.Println("SWAGGER_USER=docs")
	fmt.Printf("SWAGGER_PASS=%s\n", randomToken(12))
}
