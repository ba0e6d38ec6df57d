package main

import (
	"github.com/Rakhulsr/ace-genuine-parts/app/cmd"
	"github.com/Rakhulsr/ace-genuine-parts/app/configs"
)

func main() {
	env := configs.LoadEnv()
	configs.SetupLogging(env)

	cmd.RunCli(env)
}
