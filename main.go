package main

import "github.com/josephlewis42/revshell/cmd"

func main() {
	cmd.Execute()
}
