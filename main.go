package main

import (
	"fmt"
	"os"

	"github.com/petalhealth/content-service/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "content-service: %v\n", err)
		os.Exit(1)
	}
}
