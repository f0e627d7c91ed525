package main

import (
	"fmt"

	"go-jobscout-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Telegram Chat ID: %d\n", cfg.TelegramChatID)
	fmt.Printf("   Judge Model: %s (rerank: %s)\n", cfg.JudgeModel, cfg.JudgeRerankModel)
	fmt.Printf("   Match Threshold: %.1f (rerank trigger: %.1f)\n", cfg.MatchThreshold, cfg.RerankTrigger)
	fmt.Printf("   Scrape Interval: %d minutes\n", cfg.ScrapeIntervalMinutes)
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Data Dir: %s\n", cfg.DataDir)

	roles := cfg.EnabledRoles()
	fmt.Printf("   Enabled Roles: %d\n", len(roles))
	for _, r := range roles {
		fmt.Printf("     - %s (%s, sponsorship=%t)\n", r.Title, r.Location, r.RequiresSponsorship)
	}
}
