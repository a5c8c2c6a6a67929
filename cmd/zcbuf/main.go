package main

import "github.com/rawbytedev/zcbuf/cmd/zcbuf/cmd"

func main() {
	cmd.Execute()
}
