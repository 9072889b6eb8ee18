package main

import "binder-backend/cmd"

func main() {
	cmd.Run()
}
