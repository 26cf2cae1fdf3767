package main

import "github.com/emiliopalmerini/researchlog/internal/cli"

func main() {
	cli.Execute()
}
