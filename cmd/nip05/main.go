package main

import "github.com/aalvaropc/nip05/internal/cli"

func main() {
	cli.Execute()
}
