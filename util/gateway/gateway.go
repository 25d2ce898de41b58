// Package gateway fetches off-chain lookup answers (EIP-3668) over HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

const DEFAULT_TIMEOUT = 10 * time.Second

var ErrNoURLs = errors.New("offchain lookup has no gateway urls")

type HTTPGateway struct {
	client *http.Client
	logger *zap.Logger
}

func NewHTTPGateway(timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type request struct {
	Data   string `json:"data"`
	Sender string `json:"sender"`
}

type response struct {
	Data    string `json:"data"`
	Message string `json:"message,omitempty"`
}

// StatusError is a non 2xx gateway answer.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway %s returned %d: %s", e.URL, e.Status, e.Body)
}

// Fetch tries urls in order. A 4xx answer ends the lookup, 5xx and
// transport errors move on to the next url.
func (g *HTTPGateway) Fetch(ctx context.Context, sender common.Address, urls []string, callData []byte) ([]byte, error) {
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	errs := []error{}
	for _, tmpl := range urls {
		data, err := g.fetchOne(ctx, sender, tmpl, callData)
		if err == nil {
			return data, nil
		}
		g.logger.Debug("gateway failed", zap.String("url", tmpl), zap.Error(err))
		errs = append(errs, err)
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status >= 400 && statusErr.Status < 500 {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("offchain lookup failed: %w", errors.Join(errs...))
}

func (g *HTTPGateway) fetchOne(ctx context.Context, sender common.Address, tmpl string, callData []byte) ([]byte, error) {
	senderHex := strings.ToLower(sender.Hex())
	dataHex := hexutil.Encode(callData)
	url := strings.ReplaceAll(tmpl, "{sender}", senderHex)

	var req *http.Request
	var err error
	if strings.Contains(tmpl, "{data}") {
		url = strings.ReplaceAll(url, "{data}", dataHex)
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	} else {
		body, merr := json.Marshal(request{Data: dataHex, Sender: senderHex})
		if merr != nil {
			return nil, merr
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	result := response{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf(
			"couldn't unmarshal %s to gateway response, err: %w",
			string(body),
			err,
		)
	}
	data, err := hexutil.Decode(result.Data)
	if err != nil {
		return nil, fmt.Errorf("gateway %s returned invalid data: %w", url, err)
	}
	return data, nil
}
