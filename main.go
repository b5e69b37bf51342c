package main

import "github.com/example/namescrub/cmd"

func main() {
	cmd.Execute()
}
