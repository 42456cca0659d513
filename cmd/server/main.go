package main

import "wow-campus/internal/cli"

func main() {
	cli.Execute()
}
