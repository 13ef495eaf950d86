package main

import "table-reconcile/cmd"

func main() {
	cmd.Execute()
}
