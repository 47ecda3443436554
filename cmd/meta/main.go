package main

import "pymeta/internal/cli"

func main() {
	cli.Execute()
}
