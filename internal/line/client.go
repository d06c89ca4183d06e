// Package line is a minimal client for the LINE Messaging API covering the
// calls this bot makes: reply, push, get profile and download message
// content.  Webhook signature validation is handled upstream by the LINE
// platform configuration and is intentionally not implemented here.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiBase     = "https://api.line.me"
	apiDataBase = "https://api-data.line.me"
)

// Client calls the LINE Messaging API with a channel access token.
type Client struct {
	token string
	http  *http.Client
}

// NewClient returns a Client using the given channel access token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Profile is the subset of a LINE user profile the bot records.
type Profile struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	PictureURL    string `json:"pictureUrl"`
	StatusMessage string `json:"statusMessage"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reply answers an event using its one-time reply token.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	body := map[string]interface{}{
		"replyToken": replyToken,
		"messages":   []textMessage{{Type: "text", Text: text}},
	}
	return c.post(ctx, apiBase+"/v2/bot/message/reply", body)
}

// Push sends a text message to a user or group ID.
func (c *Client) Push(ctx context.Context, to, text string) error {
	body := map[string]interface{}{
		"to":       to,
		"messages": []textMessage{{Type: "text", Text: text}},
	}
	return c.post(ctx, apiBase+"/v2/bot/message/push", body)
}

// Profile fetches the display profile of a user.
func (c *Client) Profile(ctx context.Context, userID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/v2/bot/profile/"+userID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("line: get profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("line: get profile: status %d: %s", resp.StatusCode, msg)
	}
	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("line: decode profile: %w", err)
	}
	return &p, nil
}

// MessageContent downloads the binary payload of a message (image bytes).
// Content is served from the api-data host, not the main API host.
func (c *Client) MessageContent(ctx context.Context, messageID string) ([]byte, error) {
	url := apiDataBase + "/v2/bot/message/" + messageID + "/content"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("line: get content: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("line: get content: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) post(ctx context.Context, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("line: post %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("line: post %s: status %d: %s", url, resp.StatusCode, msg)
	}
	return nil
}
