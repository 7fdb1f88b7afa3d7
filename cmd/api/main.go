package main

import (
	"context"
	"log"

	"github.com/beandock/coffeeshop-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("coffeeshop api exited: %v", err)
	}
}
