package main

import "github.com/Otixa/luajs/cmd"

func main() {
	cmd.Execute()
}
