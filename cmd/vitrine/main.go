package main

import "github.com/Skotchmaster/vitrine/internal/cli"

func main() {
	cli.Execute()
}
