package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goldapple/parser/internal/config"
	"goldapple/parser/internal/domain"
	"goldapple/parser/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	listingPath     = "/front/api/catalog/plp"
	productCardPath = "/front/api/catalog/product-card"
)

type GoldAppleClient interface {
	GetListingPage(ctx context.Context, pageNumber int) (*domain.ListingResponse, error)
	GetProductCard(ctx context.Context, itemID domain.Value) (*domain.ProductCardResponse, error)
	ProductLink(path string) string
	Close() error
}

type goldAppleClient struct {
	rl         ratelimit.Limiter
	config     config.GoldAppleConfig
	baseURL    string
	httpClient *resty.Client
}

func NewGoldAppleClient(cfg config.GoldAppleConfig, proxySupplier proxy.ProxySupplier) GoldAppleClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", cfg.Accept).
		SetHeader("User-Agent", cfg.UserAgent)

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond, ratelimit.WithoutSlack)
	}

	return &goldAppleClient{
		rl:         rl,
		config:     cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: client,
	}
}

func (c *goldAppleClient) GetListingPage(ctx context.Context, pageNumber int) (*domain.ListingResponse, error) {
	var page *domain.ListingResponse
	if err := c.fetchJSON(ctx, c.listingURL(pageNumber), &page); err != nil {
		return nil, err
	}

	log.Debugf("Fetched listing page %d", pageNumber)
	return page, nil
}

// GetProductCard waits ItemDelay before every request, including the first
// card after a listing page.
func (c *goldAppleClient) GetProductCard(ctx context.Context, itemID domain.Value) (*domain.ProductCardResponse, error) {
	cardURL := c.productCardURL(itemID.String())
	if err := sleepContext(ctx, c.config.ItemDelay); err != nil {
		return nil, &TransportError{URL: cardURL, Err: err}
	}

	var card *domain.ProductCardResponse
	if err := c.fetchJSON(ctx, cardURL, &card); err != nil {
		return nil, err
	}

	log.Debugf("Fetched product card for item %s", itemID)
	return card, nil
}

// ProductLink turns the relative path of a listing entry into an absolute URL.
func (c *goldAppleClient) ProductLink(path string) string {
	return c.baseURL + path
}

func (c *goldAppleClient) Close() error {
	return c.httpClient.Close()
}

func (c *goldAppleClient) listingURL(pageNumber int) string {
	params := []queryParam{
		{"categoryId", c.config.CategoryID},
		{"cityId", c.config.CityID},
	}
	params = append(params, c.geoPolygonParams()...)
	params = append(params, queryParam{"pageNumber", strconv.Itoa(pageNumber)})

	return c.baseURL + listingPath + "?" + encodeQuery(params)
}

func (c *goldAppleClient) productCardURL(itemID string) string {
	params := []queryParam{
		{"itemId", itemID},
		{"cityId", c.config.CityID},
	}
	params = append(params, c.geoPolygonParams()...)
	params = append(params, queryParam{"customerGroupId", c.config.CustomerGroupID})

	return c.baseURL + productCardPath + "?" + encodeQuery(params)
}

func (c *goldAppleClient) geoPolygonParams() []queryParam {
	params := make([]queryParam, 0, len(c.config.GeoPolygons))
	for _, polygon := range c.config.GeoPolygons {
		params = append(params, queryParam{"geoPolygons[]", polygon})
	}
	return params
}

// fetchJSON GETs url and decodes a 200 response into out. Any other status is
// logged and returned as a *TransportError; an undecodable body is a *domain.ShapeError.
func (c *goldAppleClient) fetchJSON(ctx context.Context, url string, out any) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		log.Errorf("❌ Failed to fetch data: %v", err)
		return &TransportError{URL: url, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		log.Errorf("❌ Failed to fetch data: %d", resp.StatusCode())
		return &TransportError{URL: url, StatusCode: resp.StatusCode()}
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		return &domain.ShapeError{Path: "response body of " + url, Err: err}
	}

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type queryParam struct {
	key   string
	value string
}

// encodeQuery keeps parameter order and leaves keys such as geoPolygons[]
// unescaped, the way the storefront itself sends them.
func encodeQuery(params []queryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.key+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}
