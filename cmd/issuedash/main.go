package main

import "github.com/higexxp/issuedash/internal/cli"

func main() {
	cli.Execute()
}
