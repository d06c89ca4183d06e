// Package slip verifies bank-transfer slip images through the Thunder OCR
// API and enforces once-per-transaction acceptance.
package slip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Result is the Thunder verify response.  Field paths follow the vendor's
// payload; only the fields the verifier reads are declared.
type Result struct {
	Status int   `json:"status"`
	Data   *Data `json:"data"`
}

// Data is the decoded slip content.  Amount is a pointer so an absent
// amount object is told apart from a present zero amount.
type Data struct {
	TransRef string  `json:"transRef"`
	Date     string  `json:"date"`
	Amount   *Amount `json:"amount"`
	Sender   Party   `json:"sender"`
	Receiver Party   `json:"receiver"`
}

type Amount struct {
	Amount float64 `json:"amount"`
}

// Party is one side of the transfer.
type Party struct {
	Bank    Bank    `json:"bank"`
	Account Account `json:"account"`
}

type Bank struct {
	Short string `json:"short"`
	Name  string `json:"name"`
}

// Account numbers arrive under "bank" for ordinary accounts and "proxy"
// for PromptPay-style transfers.
type Account struct {
	Name  LocalizedName `json:"name"`
	Bank  AccountNo     `json:"bank"`
	Proxy AccountNo     `json:"proxy"`
}

type AccountNo struct {
	Account string `json:"account"`
}

type LocalizedName struct {
	Th string `json:"th"`
	En string `json:"en"`
}

// Verification is one completed round trip to the verify endpoint.  Result
// is nil when the body was not valid JSON; Raw always holds the body so an
// accepted slip can be persisted verbatim.
type Verification struct {
	HTTPStatus int
	Raw        []byte
	Result     *Result
}

// Client posts slip images to the Thunder verify endpoint.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewClient returns a Client for the given endpoint URL and API key.
func NewClient(url, apiKey string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Verify uploads the image as a multipart "file" part.  A transport
// failure returns an error; any completed HTTP exchange returns a
// Verification, including non-2xx and non-JSON responses, which the
// verifier classifies as not-a-slip.
func (c *Client) Verify(ctx context.Context, image []byte) (*Verification, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "slip.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slip: verify request: %w", err)
	}
	defer resp.Body.Close()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("slip: read verify response: %w", err)
	}

	v := &Verification{HTTPStatus: resp.StatusCode, Raw: raw.Bytes()}
	var result Result
	if err := json.Unmarshal(v.Raw, &result); err == nil {
		v.Result = &result
	}
	return v, nil
}
