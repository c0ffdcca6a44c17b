package main

import "github.com/wanderlog/internal/cli"

func main() {
	cli.Execute()
}
