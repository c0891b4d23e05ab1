// Package main is the entry point of the beankit CLI.
//
// beankit reads and writes properties of YAML and TOML documents with
// bean expressions, and validates documents against class definitions:
//
//	beankit get order.yaml customer.name lines[0].sku
//	beankit set -w order.toml "lines[1].quantity=3"
//	beankit check order.class.yaml order.yaml
package main

import (
	"context"
	"fmt"
	"os"

	"beankit/cmd/beankit/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
