package main

import (
	"board-lab/domain"
	"board-lab/infrastructure/storage"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const defaultDBPath = "./badger"

// Lists the elements stored in a board database.
//
//	go run ./tools -db ./data -room R
func main() {
	dbPath := flag.String("db", defaultDBPath, "Path to badger DB")
	room := flag.String("room", "", "Only list this room")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repository := storage.NewElementRepository(db, logs.GetLoggerFromLevel(slog.LevelWarn))
	ctx := context.Background()

	var elements []domain.Element
	if *room == "" {
		elements, err = repository.All(ctx)
	} else {
		elements, err = repository.Scan(ctx, *room)
	}
	if err != nil {
		log.Fatal(err)
	}

	slices.SortFunc(elements, func(a, b domain.Element) int {
		if c := strings.Compare(a.Room(), b.Room()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Element ID", "Player", "Type", "Coordinates", "Other fields"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, element := range elements {
		player, ok := element.Player()
		if !ok {
			player = "-"
		}
		elementType, _ := element[domain.FieldType].(string)

		table.Append([]string{
			element.Room(),
			element.ID(),
			player,
			elementType,
			compact(element[domain.FieldCoordinates]),
			compact(lo.OmitByKeys(element, []string{
				domain.FieldElementID,
				domain.FieldRoom,
				domain.FieldPlayer,
				domain.FieldType,
				domain.FieldCoordinates,
			})),
		})
	}
	table.Render()
	fmt.Printf("%d element(s)\n", len(elements))
}

func compact(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
