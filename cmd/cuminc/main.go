// Package main provides the cuminc CLI entry point.
package main

import "os"

func main() {
	os.Exit(Execute())
}
