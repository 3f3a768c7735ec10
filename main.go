package main

import "github.com/implicitfields/igp/cmd"

func main() {
	cmd.Execute()
}
