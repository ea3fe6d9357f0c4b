// Command hashpw prints the Argon2id hash for a password so it can be
// wired into STOREADMIN_ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/madhavavarma/storeadminnom/pkg/security"
)

func main() {
	password := flag.String("password", "", "password to hash (reads stdin when empty)")
	flag.Parse()

	value := *password
	if value == "" {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "read password:", err)
			os.Exit(1)
		}
		value = strings.TrimRight(line, "\r\n")
	}

	hash, err := security.HashPassword(value)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
