package main

import "filesync/cmd"

func main() {
	cmd.Execute()
}
