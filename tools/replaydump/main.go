package main

import (
	"fmt"
	"os"
	"time"

	"rogue-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	svc := storage.NewReplayService(".")
	log, err := svc.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Failed to load replay: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seed:     %d\n", log.Seed)
	fmt.Printf("recorded: %s\n", time.Unix(log.Timestamp, 0).UTC().Format(time.RFC3339))
	fmt.Printf("turns:    %d\n", len(log.Records))

	if len(os.Args) > 2 && os.Args[2] == "full" {
		for i, rec := range log.Records {
			fmt.Printf("%5d  tick=%-8d %s %s\n", i, rec.Tick, rec.Actor, rec.Action)
		}
	}
}

func printHelp() {
	fmt.Println(`Replay Dump - просмотр сохраненных лент ходов (.rgrp)
Usage:
  replaydump <file>       - сводка по реплею
  replaydump <file> full  - полный список ходов`)
}
