package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"zhurnal/internal/config"
	"zhurnal/internal/journal"
	"zhurnal/internal/source"
)

func main() {
	cfg := config.Get()

	fmt.Println("🔍 === STARTING COMPONENT DIAGNOSTICS ===")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 1. TEST JOURNALS SOURCE
	fmt.Printf("\n[1] Testing journals source (%s)...\n", cfg.Source.URL)
	checkSource(ctx, cfg)

	// 2. TEST WALL PAGE
	fmt.Printf("\n[2] Testing Wall page (%s)...\n", cfg.Wall.FullURL())
	checkPage(cfg.Wall.FullURL() + "/")

	// 3. TEST JSON API
	fmt.Println("\n[3] Testing JSON API...")
	checkAPI(cfg.Wall.FullURL() + "/api/journals")

	fmt.Println("\n🏁 === DIAGNOSTICS COMPLETE ===")
}

func checkSource(ctx context.Context, cfg *config.Config) {
	lg := logrus.New()
	lg.SetLevel(logrus.WarnLevel)

	data, err := source.New(cfg.Source, lg).Fetch(ctx)
	if err != nil {
		log.Printf("❌ Source fetch failed: %v", err)
		return
	}
	records, err := journal.Parse(data)
	if err != nil {
		log.Printf("❌ Source document invalid: %v", err)
		return
	}
	fmt.Printf("✅ PASS. %d journals in document\n", len(records))
	if len(records) > 0 {
		fmt.Printf("   First: %s (code %s)\n", records[0].Name, records[0].Code)
	}
}

func checkPage(url string) {
	resp, err := http.Get(url)
	if err != nil {
		log.Printf("❌ Wall page failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Printf("✅ PASS. HTTP Status: %d\n", resp.StatusCode)
	} else {
		fmt.Printf("⚠️ WARNING. HTTP Status: %d\n", resp.StatusCode)
	}
}

func checkAPI(url string) {
	resp, err := http.Get(url)
	if err != nil {
		log.Printf("❌ API failed: %v", err)
		return
	}
	defer resp.Body.Close()

	var out struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("❌ API returned bad JSON: %v", err)
		return
	}
	fmt.Printf("✅ PASS. Status: %d, Journals: %d\n", resp.StatusCode, out.Total)
	if out.Total == 0 {
		fmt.Println("   (Note: 0 journals is expected if the source document is empty)")
	}
}
