// AngelaMos | 2026
// main.go

// Command keygen writes the ES256 key pair the API signs tokens with.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/angelamos/workhaven/internal/auth"
)

func main() {
	privatePath := flag.String("private", "keys/private.pem", "private key output path")
	publicPath := flag.String("public", "keys/public.pem", "public key output path")
	flag.Parse()

	if _, err := os.Stat(*privatePath); err == nil {
		fmt.Fprintf(os.Stderr, "refusing to overwrite %s\n", *privatePath)
		os.Exit(1)
	}

	if err := auth.GenerateKeyPair(*privatePath, *publicPath); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s\n", *privatePath, *publicPath)
}
