package main

import (
	"fmt"
	"os"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
