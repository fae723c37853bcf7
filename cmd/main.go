package main

import "healthydev/internal/cli"

func main() {
	cli.Execute()
}
