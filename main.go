package main

import "github.com/will-rowe/pansel/cmd"

func main() {
	cmd.Execute()
}
