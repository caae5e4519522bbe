// Command bloomcheck derives filter sizing and measures false positive
// rates of the agingbloom filters.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
