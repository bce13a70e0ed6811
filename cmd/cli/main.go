package main

import "github.com/asfandyar/optico-store/internal/cli"

func main() {
	cli.Execute()
}
