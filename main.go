package main

import "class-timetable/cmd"

func main() {
	cmd.Execute()
}
