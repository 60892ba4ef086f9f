// Command server runs the Bible study chat backend: the streaming chat
// endpoint, the direct sub-agent endpoints, voice tool relay, and
// conversation/note persistence.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/klappy/unfoldingtheword/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
