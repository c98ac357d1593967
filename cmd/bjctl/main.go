package main

import "github.com/cardhouse/blackjackd/internal/cli"

func main() {
	cli.Execute()
}
