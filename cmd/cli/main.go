// Command cli prints the journaled moves of one game.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/minaorangina/fanren/journal"
)

func main() {
	path := flag.String("journal", "moves.db", "path to the move journal")
	gameID := flag.String("game", "", "game id")
	flag.Parse()

	if *gameID == "" {
		flag.Usage()
		os.Exit(2)
	}

	j, err := journal.Open(*path, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer j.Close()

	entries, err := j.ByGame(context.Background(), *gameID)
	if err != nil {
		log.Fatal(err.Error())
	}

	for i, e := range entries {
		fmt.Printf("%3d  %s  %-12s %-22s targets=[%s] decision=%v -> %s\n",
			i+1,
			e.CreatedAt.Format("15:04:05.000"),
			e.PlayerID,
			e.Command,
			strings.Join(e.Targets, ","),
			e.Decision,
			e.Phase,
		)
	}
}
