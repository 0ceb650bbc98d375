// Command genhash prints a bcrypt hash for seeding the first admin account:
//
//	genhash -password 's3cret' | xargs -I{} mysql -e "UPDATE users SET password_hash='{}' WHERE id=1"
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/01moynul/storefront-api/internal/auth"
	"github.com/01moynul/storefront-api/internal/models"
)

func main() {
	var password string
	flag.StringVar(&password, "password", "", "plain-text password to hash")
	flag.Parse()

	if password == "" {
		password = os.Getenv("PASSWORD")
	}
	if len(password) < auth.MinPasswordLength {
		fmt.Fprintf(os.Stderr, "password must be at least %d characters (use -password or PASSWORD)\n", auth.MinPasswordLength)
		os.Exit(2)
	}

	var p models.Password
	if err := p.Set(password); err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(p.Hash)
}
