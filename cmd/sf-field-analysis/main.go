package main

import "github.com/gbshahaq/sf-field-analysis/internal/cli"

func main() {
	cli.Execute()
}
