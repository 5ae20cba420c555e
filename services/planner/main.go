package main

import "study-planner/services/planner/cmd"

func main() {
	cmd.Execute()
}
