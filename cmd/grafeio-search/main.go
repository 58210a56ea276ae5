// grafeio-search is an interactive terminal search over the citizen
// roster. Each keystroke-batch (line) updates the criteria; queries are
// debounced and stale responses discarded, so the screen always shows the
// newest criteria's results.
//
// Commands:
//
//	<text>      search the citizens list for <text>
//	:d <δήμος>  filter by municipality (":d" alone clears it)
//	:p <n>      jump to page n of the current criteria
//	:q          quit
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"grafeio-data/internal/client"
	"grafeio-data/internal/config"
	"grafeio-data/internal/logger"
	"grafeio-data/internal/search"
)

func main() {
	cfg := config.Load()
	baseURL := os.Getenv("OFFICE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost" + cfg.HTTP.Addr
	}

	log, err := logger.NewLogger(cfg.Log.Level, "console", "grafeio-search")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	api := client.NewOfficeClient(baseURL, log)

	ctrl := search.NewController(search.DefaultDebounce,
		api.SearchCitizens,
		printPage,
		log,
	)
	defer ctrl.Close()

	fmt.Printf("searching %s (:q to quit)\n", baseURL)

	criteria := client.CitizenCriteria{}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == ":q":
			return
		case strings.HasPrefix(line, ":p "):
			page, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, ":p ")))
			if err != nil || page < 1 {
				fmt.Println("usage: :p <page>")
				continue
			}
			ctrl.SetPage(page)
		case line == ":d":
			criteria.Municipality = ""
			ctrl.SetCriteria(criteria)
		case strings.HasPrefix(line, ":d "):
			criteria.Municipality = strings.TrimSpace(strings.TrimPrefix(line, ":d "))
			ctrl.SetCriteria(criteria)
		default:
			criteria.Search = line
			ctrl.SetCriteria(criteria)
		}
	}
}

func printPage(page client.CitizenPage, err error) {
	if err != nil {
		fmt.Printf("could not load: %v\n", err)
		return
	}
	if page.Page.Total == 0 {
		fmt.Println("no results for your search")
		return
	}
	for _, c := range page.Items {
		fmt.Printf("  %-25s %-20s %-15s %s\n", c.Surname, c.Name, c.MobilePhone, c.Municipality)
	}
	fmt.Printf("showing %d-%d of %d (page %d/%d)\n",
		page.Page.From, page.Page.To, page.Page.Total, page.Page.Number, page.Page.TotalPages)
}
