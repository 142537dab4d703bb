package main

import "recipebook/internal/cli"

func main() {
	cli.Execute()
}
