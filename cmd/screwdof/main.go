// Command screwdof analyzes the mobility of mechanisms described in YAML or
// JSON files.
//
//	screwdof analyze four_bar.yaml wrist.json --jobs 4
//	screwdof analyze mech.yaml --format yaml --gap-threshold 500
//	screwdof spectrum mech.yaml
//	screwdof version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
