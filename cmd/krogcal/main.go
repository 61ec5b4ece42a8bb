package main

import "krogcal/internal/cli"

func main() {
	cli.Execute()
}
