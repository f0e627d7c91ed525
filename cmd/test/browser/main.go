package main

import (
	"fmt"
	"log"
	"os"

	"go-jobscout-automation/internal/browser"
)

func main() {
	fmt.Println("🌐 Testing browser session...")

	cookiesPath := "cookies/cookies-linkedin.json"
	if len(os.Args) > 1 {
		cookiesPath = os.Args[1]
	}

	//create playwright manager, visible window so the session can be inspected
	pm, err := browser.NewPlaywright(false)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	//load cookies
	cookies, err := browser.LoadCookies(cookiesPath)
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//create context with cookies
	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	fmt.Println("✅ Browser context created")

	session, err := browser.NewSession(browserCtx)
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}
	defer session.Close()

	page := session.CurrentPage()

	fmt.Println("🔍 Navigating to LinkedIn jobs...")
	if _, err := page.Goto("https://www.linkedin.com/jobs/"); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	//a logged-out session redirects to the auth wall
	fmt.Printf("✅ Landed on: %s\n", page.URL())

	title, _ := page.Title()
	fmt.Printf("✅ Page title: %s\n", title)

	//take screenshot
	if path, err := browser.CaptureScreenshot(page, "browser-test"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Printf("📸 Screenshot saved: %s\n", path)
	}
	fmt.Println("✨ Test complete!")
}
