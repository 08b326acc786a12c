// main is the entry point for the streak CLI.
package main

import (
	"github.com/huangsam/streak/cmd"
	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetCacheManager(iocache.Manager)

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
