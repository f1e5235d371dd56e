package main

import "github.com/tkarvinen/libris/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
