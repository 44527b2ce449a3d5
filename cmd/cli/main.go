package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"logoforge/internal/animation"
	"logoforge/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

func main() {
	global := flag.NewFlagSet("logoforge", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cmd {
	case "animate":
		handleAnimate(ctx, args[1:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, args[2:])
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "logos":
		handleLogos(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "feedback":
		handleFeedback(ctx, client, *baseURL, *tokenPath, args[1:])
	case "watch":
		handleWatch(*baseURL, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

// handleAnimate runs the pipeline locally, without a server.
func handleAnimate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("animate", flag.ExitOnError)
	in := fs.String("in", "", "input SVG file")
	animType := fs.String("type", "fade_in", "animation type")
	duration := fs.Int("duration", 0, "duration in ms (0 = default)")
	delay := fs.Int("delay", 0, "delay in ms")
	easing := fs.String("easing", "", "easing function")
	iterations := fs.Int("iterations", 0, "iterations (-1 = infinite, 0 = default)")
	_ = fs.Parse(args)

	if *in == "" {
		log.Fatal("input SVG file is required (-in)")
	}
	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	opts := models.AnimationOptions{
		Type: models.AnimationType(*animType),
		Timing: models.AnimationTiming{
			DurationMS: *duration,
			DelayMS:    *delay,
			Easing:     models.AnimationEasing(*easing),
			Iterations: *iterations,
		},
	}

	svc := animation.NewService(animation.NewDefaultRegistry(), nil, 0)
	resp := svc.Animate(ctx, string(raw), opts)
	if !resp.Success {
		log.Fatalf("animate failed [%s]: %s (%s)", resp.Error.Code, resp.Error.Message, resp.Error.Details)
	}

	base := strings.TrimSuffix(*in, filepath.Ext(*in))
	if err := os.WriteFile(base+".animated.svg", []byte(resp.Result.AnimatedSvg), 0o644); err != nil {
		log.Fatalf("write animated svg: %v", err)
	}
	log.Printf("wrote %s.animated.svg", base)

	if resp.Result.CSSCode != "" {
		if err := os.WriteFile(base+".css", []byte(resp.Result.CSSCode), 0o644); err != nil {
			log.Fatalf("write css: %v", err)
		}
		log.Printf("wrote %s.css", base)
	}
	if resp.Result.JSCode != "" {
		if err := os.WriteFile(base+".js", []byte(resp.Result.JSCode), 0o644); err != nil {
			log.Fatalf("write js: %v", err)
		}
		log.Printf("wrote %s.js", base)
	}
	for _, w := range resp.Warnings {
		log.Printf("warning: %s", w)
	}
	log.Printf("done in %dms", resp.ProcessingTimeMS)
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "create":
		fs := flag.NewFlagSet("export create", flag.ExitOnError)
		svgPath := fs.String("svg", "", "animated SVG file")
		cssPath := fs.String("css", "", "CSS file (optional)")
		jsPath := fs.String("js", "", "JS file (optional)")
		format := fs.String("format", "svg", "export format: svg|html")
		_ = fs.Parse(args)

		if *svgPath == "" {
			log.Fatal("animated SVG file is required (-svg)")
		}

		payload := map[string]string{
			"animated_svg": mustRead(*svgPath),
			"format":       *format,
		}
		if *cssPath != "" {
			payload["css_code"] = mustRead(*cssPath)
		}
		if *jsPath != "" {
			payload["js_code"] = mustRead(*jsPath)
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/export", "", payload, &resp); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		printJSON(resp)
	case "download":
		fs := flag.NewFlagSet("export download", flag.ExitOnError)
		id := fs.String("id", "", "export id")
		out := fs.String("out", "", "output path")
		_ = fs.Parse(args)
		if *id == "" || *out == "" {
			log.Fatal("export id and output path are required")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/export/"+url.PathEscape(*id), nil)
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("download failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			log.Fatalf("download failed: %s", strings.TrimSpace(string(body)))
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Fatalf("read body: %v", err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatalf("write file: %v", err)
		}
		log.Printf("wrote %s (%d bytes)", *out, len(data))
	default:
		log.Fatal("usage: logoforge export <create|download>")
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("registered and logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("logged out")
	default:
		log.Fatal("usage: logoforge auth <login|register|logout>")
	}
}

func handleLogos(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "list":
		fs := flag.NewFlagSet("logos list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/logos")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		qv.Set("offset", fmt.Sprintf("%d", *offset))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("logos show", flag.ExitOnError)
		id := fs.String("id", "", "logo package id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("logo package id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/logos/"+url.PathEscape(*id), token, nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	case "delete":
		fs := flag.NewFlagSet("logos delete", flag.ExitOnError)
		id := fs.String("id", "", "logo package id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("logo package id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/logos/"+url.PathEscape(*id), token, nil, &resp); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: logoforge logos <list|show|delete>")
	}
}

func handleFeedback(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	token := mustToken(tokenPath)
	fs := flag.NewFlagSet("feedback", flag.ExitOnError)
	rating := fs.Int("rating", 0, "rating 1-5")
	comment := fs.String("comment", "", "free-form comment")
	contextLabel := fs.String("context", "", "what the feedback is about")
	_ = fs.Parse(args)

	if *rating < 1 || *rating > 5 {
		log.Fatal("rating must be between 1 and 5")
	}

	payload := map[string]any{
		"rating":  *rating,
		"comment": *comment,
		"context": *contextLabel,
	}
	var resp map[string]any
	if err := doJSON(ctx, client, http.MethodPost, baseURL+"/feedback", token, payload, &resp); err != nil {
		log.Fatalf("feedback failed: %v", err)
	}
	printJSON(resp)
}

// handleWatch streams pipeline progress events from the server.
func handleWatch(baseURL string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
	_ = fs.Parse(args)

	endpoint := *wsURL
	if endpoint == "" {
		var err error
		endpoint, err = websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
	}
	if err := runWebSocket(endpoint); err != nil {
		log.Fatalf("watch failed: %v", err)
	}
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func mustRead(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.logoforge-token.json"
	}
	return filepath.Join(home, ".logoforge", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("logoforge <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  animate -in logo.svg -type spin [-duration 1500] [-easing ease-out]")
	fmt.Println("  export create|download")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  logos list|show|delete")
	fmt.Println("  feedback -rating 5 [-comment ...]")
	fmt.Println("  watch")
}
