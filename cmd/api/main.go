package main

import (
	"context"
	"log"

	apiapp "github.com/goshop/orderflow/internal/app/api"
)

func main() {
	if err := apiapp.Run(context.Background()); err != nil {
		log.Fatalf("order API exited: %v", err)
	}
}
