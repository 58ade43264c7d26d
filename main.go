package main

import "employee-records/cmd"

func main() {
	cmd.Execute()
}
