package main

import "github.com/tomnetutc/tmd-sub000/cmd"

func main() {
	cmd.Execute()
}
