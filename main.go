package main

import "github.com/tranvictor/ensreader/cmd"

func main() {
	cmd.Execute()
}
