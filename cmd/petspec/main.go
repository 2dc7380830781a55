package main

import "github.com/m3org/petspec/pkg/cli"

func main() {
	cli.Execute()
}
