package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowvault/flowvault/pkg/userstore"
)

// loadUsers seeds the in-memory user store from a JSON file containing an
// array of users. The file is the development stand-in for the platform's
// account service.
func loadUsers(path string, store *userstore.Memory) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read users file: %w", err)
	}

	var users []userstore.User
	if err := json.Unmarshal(data, &users); err != nil {
		return 0, fmt.Errorf("parse users file: %w", err)
	}

	for _, u := range users {
		store.Put(u)
	}
	return len(users), nil
}
