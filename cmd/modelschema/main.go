package main

import (
	"os"

	"github.com/tordrt/modelschema"
	"github.com/tordrt/modelschema/examples/shop"
)

func main() {
	if err := modelschema.NewCommand(shop.Register).Execute(); err != nil {
		os.Exit(1)
	}
}
