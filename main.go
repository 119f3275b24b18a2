// Command musher tracks sled dog workloads and picks fresh teams.
package main

import (
	"github.com/kennelops/musher/cmd"
	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/internal/recstore"
)

func main() {
	cmd.SetStoreManager(recstore.Manager)

	err := cmd.Execute()
	recstore.CloseStore()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
