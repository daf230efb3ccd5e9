package main

import (
	"tamoassist-backend/cmd/tamo-cli/commands"
	"tamoassist-backend/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
