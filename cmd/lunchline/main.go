package main

import "lunchline/internal/cli"

func main() {
	cli.Execute()
}
