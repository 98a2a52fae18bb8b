package main

import (
	"board-lab/domain"
	"board-lab/infrastructure/storage"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
)

const defaultDBPath = "./badger"

var shapes = []string{"rect", "circle", "text", "arrow"}

// Fills a board database with random elements, handy before running the inspector.
func main() {
	dbPath := flag.String("db", defaultDBPath, "Path to badger DB")
	rooms := flag.Int("rooms", 3, "Number of rooms")
	perRoom := flag.Int("per-room", 10, "Elements per room")
	flag.Parse()

	log := logs.GetLoggerFromLevel(slog.LevelInfo)

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Error("Error while opening Badger", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repository := storage.NewElementRepository(db, log)
	ctx := context.Background()

	for r := 0; r < *rooms; r++ {
		room := fmt.Sprintf("room-%d", r+1)
		for i := 0; i < *perRoom; i++ {
			if err := repository.Put(ctx, randomElement(room)); err != nil {
				log.Error("Seed aborted", "room", room, "error", err)
				os.Exit(1)
			}
		}
		log.Info("Room seeded", "room", room, "elements", *perRoom)
	}
	fmt.Printf("Data stored in %s. You can now run the inspector !\n", *dbPath)
}

func randomElement(room string) domain.Element {
	x, y := rand.IntN(800), rand.IntN(600)
	return domain.Element{
		domain.FieldElementID:   uuid.NewString(),
		domain.FieldRoom:        room,
		domain.FieldPlayer:      fmt.Sprintf("player-%d", rand.IntN(4)+1),
		domain.FieldType:        shapes[rand.IntN(len(shapes))],
		domain.FieldCoordinates: []int{x, y, x + rand.IntN(200) + 10, y + rand.IntN(200) + 10},
		domain.FieldStyles:      map[string]any{"color": "#3366ff", "z": rand.IntN(10)},
	}
}
