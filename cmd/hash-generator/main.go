// Command hash-generator prints bcrypt hashes for the passwords given on
// the command line. Useful for seeding users (e.g. an admin account)
// directly in SQL.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	passwords := os.Args[1:]
	if len(passwords) == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator <password> [password...]")
		os.Exit(2)
	}

	for _, password := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", string(hash))
	}
}
