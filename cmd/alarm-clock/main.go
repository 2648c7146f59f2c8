package main

import (
	"github.com/retrotone/lcd-alarm-clock/cmd/alarm-clock/cmd"
)

func main() {
	cmd.Execute()
}
