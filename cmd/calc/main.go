package main

import "github.com/zephyrtronium/calc/internal/cli"

func main() {
	cli.Execute()
}
