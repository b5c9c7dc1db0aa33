package main

import "github.com/SscSPs/eft_batch_service/internal/cli"

func main() {
	cli.Execute()
}
