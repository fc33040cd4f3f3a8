package main

import "github.com/tldr-it-stepankutaj/whodat/cmd/whodat"

func main() {
	whodat.Execute()
}
