// Command dccc is the dummyc compiler's entry point: parse CLI flags, run the
// pipeline, report errors. Grounded on the teacher's src/main.go.
package main

import (
	"fmt"
	"os"

	"dcc/internal/driver"
)

func main() {
	opt, err := driver.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("command line argument error: %s\n", err)
		os.Exit(1)
	}

	if err := driver.Run(opt); err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
}
