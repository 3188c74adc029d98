package handlers

import (
	"log"
	"os"

	"p9e.in/loantrack/pkg/dedup"
)

var (
	dedupStore dedup.Store
	mailer     *Mailer
)

// Setup wires the shared handler dependencies. Call after config.Connect.
// With REDIS_ADDR set the duplicate guard is shared across instances,
// otherwise it falls back to the in-process store.
func Setup() {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		store, err := dedup.OpenRedis(addr)
		if err != nil {
			log.Printf("redis unavailable (%v), using in-memory duplicate guard", err)
			dedupStore = dedup.NewMemoryStore()
		} else {
			dedupStore = store
		}
	} else {
		dedupStore = dedup.NewMemoryStore()
	}

	mailer = NewMailerFromEnv()
}
