package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scrapeResponse mirrors the smsgrab API response model.
type scrapeResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Messages []struct {
		Sender     string `json:"sender"`
		Body       string `json:"message"`
		ReceivedAt string `json:"received_at"`
	} `json:"messages"`
}

// messagesResponse mirrors the smsgrab stored-messages response model.
type messagesResponse struct {
	Success  bool `json:"success"`
	Messages []struct {
		Sender     string `json:"sender"`
		Body       string `json:"message"`
		ReceivedAt string `json:"received_at"`
	} `json:"messages"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("SMSGRAB_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("SMSGRAB_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "SMSGRAB_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"smsgrab",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_messages",
		mcp.WithDescription("Scrape a receive-sms-online provider page and return the SMS messages currently listed on it."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The provider page URL (must carry the phone and key query parameters)"),
		),
	)
	s.AddTool(scrapeTool, handleScrapeMessages(apiURL, apiKey))

	listTool := mcp.NewTool("list_messages",
		mcp.WithDescription("List previously stored SMS messages for a phone number."),
		mcp.WithString("phone",
			mcp.Required(),
			mcp.Description("The phone number the messages were scraped for"),
		),
	)
	s.AddTool(listTool, handleListMessages(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeMessages(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload, err := json.Marshal(map[string]any{"url": target, "persist": true})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/scrape", bytes.NewReader(payload))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", apiKey)

		resp, err := client.Do(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var sr scrapeResponse
		if err := json.Unmarshal(body, &sr); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !sr.Success {
			msg := "scrape failed"
			if sr.Error != "" {
				msg = sr.Error
			}
			return mcp.NewToolResultError(msg), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d message(s)\n\n", len(sr.Messages)))
		for _, m := range sr.Messages {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", m.ReceivedAt, m.Sender, m.Body))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleListMessages(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		phone, err := request.RequireString("phone")
		if err != nil {
			return mcp.NewToolResultError("phone is required"), nil
		}

		endpoint := apiURL + "/api/v1/messages?phone=" + url.QueryEscape(phone)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		req.Header.Set("X-API-Key", apiKey)

		resp, err := client.Do(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var mr messagesResponse
		if err := json.Unmarshal(body, &mr); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !mr.Success {
			msg := "listing failed"
			if mr.Error != nil {
				msg = fmt.Sprintf("[%s] %s", mr.Error.Code, mr.Error.Message)
			}
			return mcp.NewToolResultError(msg), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d stored message(s) for %s\n\n", len(mr.Messages), phone))
		for _, m := range mr.Messages {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", m.ReceivedAt, m.Sender, m.Body))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
