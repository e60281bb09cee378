package main

import "github.com/classdex/classdex/internal/cli"

func main() {
	cli.Execute()
}
