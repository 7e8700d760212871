package main

import (
	"chat-live/repositories"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

const timeLayout = "2006-01-02 15:04:05"

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg:, thread:, unseen:, user:, email:)")
	limit := flag.Int("limit", 0, "Stop after this many entries, 0 for all")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	records, err := scan(db, *prefix, *limit)
	if err != nil {
		log.Fatal(err)
	}
	render(os.Stdout, records)
	fmt.Printf("%d entries under %q\n", len(records), *prefix)
}

// scan decodes every entry under prefix, up to limit when it is positive.
func scan(db *badger.DB, prefix string, limit int) ([]repositories.Record, error) {
	var records []repositories.Record
	err := db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(records) == limit {
				return nil
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			records = append(records, repositories.DescribeRecord(string(it.Item().KeyCopy(nil)), value))
		}
		return nil
	})
	return records, err
}

func render(w io.Writer, records []repositories.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Kind", "Timestamp", "Entity", "Detail", "Unseen"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	for _, record := range records {
		timestamp := ""
		if !record.At.IsZero() {
			timestamp = record.At.Format(timeLayout)
		}
		unseen := ""
		if record.Flagged {
			unseen = "yes"
		}
		table.Append([]string{record.Key, record.Kind, timestamp, record.Entity, record.Detail, unseen})
	}
	table.Render()
}

// openDB opens the store read-only so it can be inspected next to a running server.
func openDB(path string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		return nil, fmt.Errorf("store needs recovery, start the server once to replay it: %w", err)
	}
	return db, err
}
