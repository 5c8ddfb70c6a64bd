package main

import "guild-ledger/cmd"

func main() {
	cmd.Execute()
}
