// Command hash-password prints the bcrypt hash for a password, for the
// RECITE_AUTH_PASSWORD_HASH configuration value.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/recitelabs/recite-api/internal/service/auth"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "read password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "password cannot be empty")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
