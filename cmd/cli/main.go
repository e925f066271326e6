package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"zhurnal/internal/config"
	"zhurnal/internal/journal"
	"zhurnal/internal/source"
	"zhurnal/internal/wall"
)

const historyFile = ".zhurnal_history"

var (
	cfg   *config.Config
	log   *logrus.Logger
	links journal.Links
)

func main() {
	cfg = config.Get()

	log = logrus.New()
	if cfg.CLI.Debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	links = journal.NewLinks(cfg.Ranking)

	// Одноразовый режим: zhurnal-cli load / parse file.json / render q
	if len(os.Args) > 1 {
		execute(strings.Join(os.Args[1:], " "))
		return
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Println("Zhurnal Interactive Shell")
	fmt.Println("Commands: load | show [q] | parse <file> | render [q] | urls <code> | exit")
	for {
		input, err := line.Prompt("zhurnal> ")
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		line.AppendHistory(input)
		execute(input)
	}

	if f, err := os.Create(historyFile); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}

func execute(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}
	cmd, rest := parts[0], strings.Join(parts[1:], " ")

	switch cmd {
	case "load", "show":
		records, elapsed, err := loadRecords()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printRecords(journal.Filter(records, rest))
		fmt.Printf("\n⏱ Загрузка заняла: %v\n\n", elapsed)

	case "parse":
		if rest == "" {
			fmt.Println("usage: parse <file>")
			return
		}
		data, err := os.ReadFile(rest)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		records, err := journal.Parse(data)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			return
		}
		printRecords(records)

	case "render":
		records, _, err := loadRecords()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := wall.NewRenderer(links).Render(os.Stdout, journal.Filter(records, rest)); err != nil {
			fmt.Printf("Render error: %v\n", err)
		}

	case "urls":
		if rest == "" {
			fmt.Println("usage: urls <code>")
			return
		}
		fmt.Printf("search: %s\nthumb:  %s\n", links.SearchURL(rest), links.ThumbURL(rest))

	default:
		fmt.Printf("unknown command: %s\n", cmd)
	}
}

func loadRecords() ([]journal.Record, time.Duration, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
	defer cancel()

	data, err := source.New(cfg.Source, log).Fetch(ctx)
	if err != nil {
		return nil, 0, err
	}
	records, err := journal.Parse(data)
	return records, time.Since(start), err
}

func printRecords(records []journal.Record) {
	if len(records) == 0 {
		fmt.Println("No journals found.")
		return
	}
	fmt.Printf("%-40s | %-10s\n", "Name", "Code")
	fmt.Println(strings.Repeat("-", 55))
	for _, r := range records {
		fmt.Printf("%-40s | %-10s\n", r.Name, r.Code)
	}
	fmt.Printf("Total: %d\n", len(records))
}
