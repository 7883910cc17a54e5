package main

import "github.com/Kariqs/orders-api/cmd"

func main() {
	cmd.Execute()
}
