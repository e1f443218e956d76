package main

import "github.com/olivier-w/crossroads/internal/cli"

func main() {
	cli.Execute()
}
