package main

import "github.com/Xevion/go-ha-number-card/cmd/numbercard/cmd"

func main() {
	cmd.Execute()
}
