package main

import "github.com/shopfront/apiserver/cmd"

func main() {
	cmd.Execute()
}
