package main

import "github.com/jaajung-kjs/digital-sub000/cmd/planctl/cmd"

func main() {
	cmd.Execute()
}
