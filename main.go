package main

import "github.com/gaurav-prasanna/articlepipe/cmd"

func main() {
	cmd.Execute()
}
