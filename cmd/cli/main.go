package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"watchhub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type listResponse struct {
	Total int                  `json:"total"`
	Items []models.WorkingItem `json:"items"`
}

type sagaStatsResponse struct {
	Sagas    []models.SagaProgress `json:"sagas"`
	Favorite *models.SagaProgress  `json:"favorite"`
}

type askResponse struct {
	Question models.Message `json:"question"`
	Answer   models.Message `json:"answer"`
}

func main() {
	global := flag.NewFlagSet("watchhub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 15 * time.Second}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "list":
		handleList(ctx, client, *baseURL, rest)
	case "show":
		handleShow(ctx, client, *baseURL, rest)
	case "watch":
		handleWatch(ctx, client, *baseURL, rest, true)
	case "unwatch":
		handleWatch(ctx, client, *baseURL, rest, false)
	case "rate":
		handleRate(ctx, client, *baseURL, rest)
	case "comment":
		handleComment(ctx, client, *baseURL, rest)
	case "schedule":
		handleSchedule(ctx, client, *baseURL, rest)
	case "calendar":
		handleCalendar(ctx, client, *baseURL, rest)
	case "stats":
		handleStats(ctx, client, *baseURL)
	case "sagas":
		handleSagas(ctx, client, *baseURL)
	case "ask":
		handleAsk(ctx, client, *baseURL, rest)
	case "chat":
		handleChat(*baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleList(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	q := fs.String("q", "", "title search")
	saga := fs.String("saga", "", "saga filter")
	universe := fs.String("universe", "", "universe filter")
	cType := fs.String("type", "", "content type filter")
	_ = fs.Parse(args)

	params := url.Values{}
	if *q != "" {
		params.Set("q", *q)
	}
	if *saga != "" {
		params.Set("saga", *saga)
	}
	if *universe != "" {
		params.Set("universe", *universe)
	}
	if *cType != "" {
		params.Set("type", *cType)
	}

	target := baseURL + "/catalog"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var resp listResponse
	if err := doJSON(ctx, client, http.MethodGet, target, nil, &resp); err != nil {
		log.Fatalf("list failed: %v", err)
	}

	fmt.Printf("%d titles\n", resp.Total)
	for _, it := range resp.Items {
		mark := " "
		if it.Watched {
			mark = "✓"
		}
		stars := ""
		if it.Rating > 0 {
			stars = fmt.Sprintf(" %d/5", it.Rating)
		}
		fmt.Printf("[%s] %-10s %-40s (%s)%s\n", mark, it.ID, it.Title, it.Saga, stars)
	}
}

func handleShow(ctx context.Context, client *http.Client, baseURL string, args []string) {
	id := requireID(args, "show")

	var it models.WorkingItem
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/catalog/"+id, nil, &it); err != nil {
		log.Fatalf("show failed: %v", err)
	}

	fmt.Printf("%s (%s / %s / %s)\n", it.Title, it.Saga, it.Universe, it.ContentType)
	fmt.Printf("watched: %v  rating: %d/5\n", it.Watched, it.Rating)
	if it.ScheduledDate != "" {
		fmt.Printf("scheduled: %s\n", it.ScheduledDate)
	}
	if it.Comment != "" {
		fmt.Printf("comment: %s\n", it.Comment)
	}
	if it.Synopsis != "" {
		fmt.Printf("\n%s\n", it.Synopsis)
	}
}

func handleWatch(ctx context.Context, client *http.Client, baseURL string, args []string, watched bool) {
	id := requireID(args, "watch")
	patch(ctx, client, baseURL, id, map[string]any{"watched": watched})
	if watched {
		fmt.Println("✅ marked as watched")
	} else {
		fmt.Println("✅ marked as unwatched")
	}
}

func handleRate(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	stars := fs.Int("stars", 0, "rating 0-5 (0 clears)")
	id := parseIDThen(fs, args, "rate")

	if *stars < 0 || *stars > 5 {
		log.Fatal("stars must be between 0 and 5")
	}
	patch(ctx, client, baseURL, id, map[string]any{"rating": *stars})
	fmt.Printf("✅ rated %d/5\n", *stars)
}

func handleComment(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	text := fs.String("text", "", "comment text (empty clears)")
	id := parseIDThen(fs, args, "comment")

	patch(ctx, client, baseURL, id, map[string]any{"comment": *text})
	fmt.Println("✅ comment saved")
}

func handleSchedule(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	date := fs.String("date", "", "watch date YYYY-MM-DD (empty clears)")
	id := parseIDThen(fs, args, "schedule")

	if *date != "" {
		if _, err := time.Parse("2006-01-02", *date); err != nil {
			log.Fatalf("invalid date %q, want YYYY-MM-DD", *date)
		}
	}
	patch(ctx, client, baseURL, id, map[string]any{"scheduled_date": *date})
	fmt.Println("✅ schedule saved")
}

func handleCalendar(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	date := fs.String("date", "", "event date YYYY-MM-DD (default: scheduled date)")
	id := parseIDThen(fs, args, "calendar")

	target := baseURL + "/catalog/" + id + "/calendar-link"
	if *date != "" {
		target += "?date=" + url.QueryEscape(*date)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := doJSON(ctx, client, http.MethodGet, target, nil, &resp); err != nil {
		log.Fatalf("calendar link failed: %v", err)
	}
	fmt.Println(resp.URL)
}

func handleStats(ctx context.Context, client *http.Client, baseURL string) {
	var s models.Statistics
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/stats", nil, &s); err != nil {
		log.Fatalf("stats failed: %v", err)
	}

	fmt.Printf("total:      %d\n", s.Total)
	fmt.Printf("watched:    %d\n", s.Watched)
	fmt.Printf("remaining:  %d\n", s.Remaining)
	fmt.Printf("avg rating: %.1f/5\n", s.AverageRating)
	fmt.Printf("complete:   %.1f%%\n", s.CompletionPercent)
}

func handleSagas(ctx context.Context, client *http.Client, baseURL string) {
	var resp sagaStatsResponse
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/stats/sagas", nil, &resp); err != nil {
		log.Fatalf("saga stats failed: %v", err)
	}

	for _, sp := range resp.Sagas {
		fmt.Printf("%-20s %d/%d\n", sp.Saga, sp.Watched, sp.Total)
	}
	if resp.Favorite != nil {
		fmt.Printf("\nfavorite: %s (%d watched)\n", resp.Favorite.Saga, resp.Favorite.Watched)
	} else {
		fmt.Println("\nfavorite: none yet")
	}
}

func handleAsk(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	q := fs.String("q", "", "question text")
	_ = fs.Parse(args)

	if strings.TrimSpace(*q) == "" {
		log.Fatal("-q is required")
	}

	var resp askResponse
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/assistant/ask", map[string]string{"text": *q}, &resp); err != nil {
		log.Fatalf("ask failed: %v", err)
	}
	fmt.Println(resp.Answer.Text)
}

func handleChat(baseURL string) {
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/assistant/ws"

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("connect %s: %v", wsURL, err)
	}
	defer ws.Close()

	go func() {
		for {
			var msg models.Message
			if err := ws.ReadJSON(&msg); err != nil {
				log.Println("connection closed")
				os.Exit(0)
			}
			fmt.Printf("[%s] %s\n", msg.Sender, msg.Text)
		}
	}()

	fmt.Println("type a question and press enter (ctrl-d to quit)")
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		payload, _ := json.Marshal(map[string]string{"text": text})
		if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Fatalf("send failed: %v", err)
		}
	}
}

func patch(ctx context.Context, client *http.Client, baseURL, id string, body map[string]any) {
	if err := doJSON(ctx, client, http.MethodPatch, baseURL+"/catalog/"+id+"/progress", body, nil); err != nil {
		log.Fatalf("update failed: %v", err)
	}
}

func requireID(args []string, cmd string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		log.Fatalf("usage: watchhub %s <id>", cmd)
	}
	return args[0]
}

// parseIDThen reads "<id> [flags...]" for subcommands that take both.
func parseIDThen(fs *flag.FlagSet, args []string, cmd string) string {
	id := requireID(args, cmd)
	_ = fs.Parse(args[1:])
	return id
}

func doJSON(ctx context.Context, client *http.Client, method, target string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`watchhub CLI

usage: watchhub [-api URL] <command> [args]

commands:
  list [-q text] [-saga s] [-universe u] [-type t]   browse the catalog
  show <id>                                          item details
  watch <id> | unwatch <id>                          toggle watched
  rate <id> -stars N                                 rate 0-5
  comment <id> -text "..."                           set comment
  schedule <id> -date YYYY-MM-DD                     set watch date
  calendar <id> [-date YYYY-MM-DD]                   calendar event link
  stats                                              aggregate statistics
  sagas                                              per-saga progress
  ask -q "..."                                       ask the assistant
  chat                                               interactive assistant chat`)
}
