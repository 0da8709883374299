// Package main is the entry point for the mutest CLI.
package main

import "mutest.dev/pkg/mutest/cmd"

func main() {
	cmd.Execute()
}
