package main

import "github.com/papapumpkin/fanchart/cmd"

func main() {
	cmd.Execute()
}
