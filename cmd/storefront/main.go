// Command storefront serves the product catalog.
//
//	storefront serve     migrate the database, then serve HTTP until SIGINT/SIGTERM
//	storefront migrate   apply pending migrations and exit
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
