package main

import (
	"log"

	"github.com/m3org/petspec/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
