package photo

import (
	"context"
	"log"

	"minikadimlar/internal/queue"
)

// DiscardMessage is the queue message type asking the janitor to delete a
// photo file that no student record references anymore.
const DiscardMessage = "discard-photo"

// Discard asks the janitor to remove a replaced or orphaned photo file. A full
// queue drops the request; a stray file on disk is harmless.
func Discard(ctx context.Context, q queue.Queue, name string) {
	if name == "" {
		return
	}
	if err := q.Publish(ctx, queue.Message{Type: DiscardMessage, Body: []byte(name)}); err != nil {
		log.Printf("photo discard enqueue failed for %s: %v", name, err)
	}
}

// RunJanitor consumes discard messages and deletes the named files until the
// context is cancelled.
func RunJanitor(ctx context.Context, q queue.Queue, store *Store) {
	messages, err := q.Consume(ctx)
	if err != nil {
		log.Printf("photo janitor disabled: %v", err)
		return
	}
	for msg := range messages {
		if msg.Type != DiscardMessage {
			continue
		}
		name := string(msg.Body)
		if err := store.Remove(name); err != nil {
			log.Printf("photo janitor: remove %s failed: %v", name, err)
		}
	}
}
