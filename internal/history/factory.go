// SPDX-License-Identifier: MIT

package history

import "fmt"

// Open creates a revision store for the configured backend. An empty
// backend string means memory.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		if path == "" {
			return nil, fmt.Errorf("history: badger backend requires a path")
		}
		return OpenBadgerStore(path)
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("history: sqlite backend requires a path")
		}
		return NewSqliteStore(path)
	default:
		return nil, fmt.Errorf("unknown history backend: %s (supported: memory, badger, sqlite)", backend)
	}
}
