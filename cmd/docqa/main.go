package main

import "github.com/dgallion1/docqa/internal/cli"

func main() {
	cli.Execute()
}
