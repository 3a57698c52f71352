package main

import (
	"github.com/pierregab/HPMS/cmd"
)

func main() {
	cmd.Execute()
}
