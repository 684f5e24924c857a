package main

import "nathanbeddoewebdev/staffdesk/cmd"

func main() {
	cmd.Execute()
}
