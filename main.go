package main

import "github.com/genaforvena/bass-taber/cmd"

func main() {
	cmd.Execute()
}
