// Prints a bcrypt hash for a dashboard password.
//
//	go run ./cmd/hash-password admin 's3cret'   # prints DASHBOARD_USERS='admin:<hash>'
//	go run ./cmd/hash-password 's3cret'         # prints the bare hash
//	echo 's3cret' | go run ./cmd/hash-password
//
// Hashes contain "$", which .env loaders and shells expand. Keep the value in
// single quotes, as printed by the two-argument form.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"dropoff-intake-api/utils"
)

func main() {
	var user, password string
	switch len(os.Args) {
	case 1:
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatal("Failed to read password from stdin: ", err)
		}
		password = strings.TrimRight(line, "\r\n")
	case 2:
		password = os.Args[1]
	default:
		user, password = os.Args[1], os.Args[2]
	}

	if password == "" {
		log.Fatal("Password must not be empty")
	}
	if strings.ContainsAny(user, ":,'") {
		log.Fatal("Username must not contain ':', ',' or a single quote")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	if user == "" {
		fmt.Println(hash)
		fmt.Fprintln(os.Stderr, "Put it in .env single-quoted: DASHBOARD_USERS='<user>:"+hash+"'")
		return
	}
	fmt.Printf("DASHBOARD_USERS='%s:%s'\n", user, hash)
}
