package main

import "github.com/ormond/healthchain/app/tooling/ledger-cli/cmd"

func main() {
	cmd.Execute()
}
