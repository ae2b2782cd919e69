package main

import "github.com/wisnuadi/splitledger/cmd"

func main() {
	cmd.Execute()
}
