package main

import "github.com/KapsonLabs/crmdeploy/internal/cli"

func main() {
	cli.Execute()
}
