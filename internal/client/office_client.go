// Package client is the Go consumer of the office HTTP API, used by the
// interactive search tool and any external automation.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type OfficeClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewOfficeClient(baseURL string, logger *zap.Logger) *OfficeClient {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &OfficeClient{httpClient: httpClient, logger: logger}
}

// envelope is the wire envelope every endpoint returns.
type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

const envelopeSuccess = 2000

// CitizenCriteria search criteria for the citizens list.
type CitizenCriteria struct {
	Search            string
	Municipality      string
	ElectoralDistrict string
}

type CitizenRow struct {
	CitizenID    string `json:"citizen_id"`
	Surname      string `json:"surname"`
	Name         string `json:"name"`
	MobilePhone  string `json:"mobile_phone,omitempty"`
	Municipality string `json:"municipality,omitempty"`
}

type PageInfo struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// CitizenPage one page of citizens plus the window description.
type CitizenPage struct {
	Items []CitizenRow `json:"items"`
	Page  PageInfo     `json:"pagination"`
}

// SearchCitizens queries one page of the citizens list.
func (c *OfficeClient) SearchCitizens(ctx context.Context, criteria CitizenCriteria, page int) (CitizenPage, error) {
	req := c.httpClient.R().SetContext(ctx)
	if criteria.Search != "" {
		req.SetQueryParam("search", criteria.Search)
	}
	if criteria.Municipality != "" {
		req.SetQueryParam("municipality", criteria.Municipality)
	}
	if criteria.ElectoralDistrict != "" {
		req.SetQueryParam("electoral_district", criteria.ElectoralDistrict)
	}
	req.SetQueryParam("page", strconv.Itoa(page))

	var env envelope
	resp, err := req.SetResult(&env).Get("/office/api/v1/citizens")
	if err != nil {
		return CitizenPage{}, fmt.Errorf("failed to call citizens list: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return CitizenPage{}, fmt.Errorf("citizens list returned HTTP %d", resp.StatusCode())
	}
	if env.Code != envelopeSuccess {
		return CitizenPage{}, fmt.Errorf("citizens list failed: %s", env.Message)
	}

	var out CitizenPage
	if err := json.Unmarshal(env.Result, &out); err != nil {
		return CitizenPage{}, fmt.Errorf("failed to decode citizens page: %w", err)
	}
	return out, nil
}
