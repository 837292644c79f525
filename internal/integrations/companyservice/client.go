package companyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CompanyService
// Отдаёт компании (рабочие часы), реестр ресурсов (посты и мастера) и каталог услуг (цены).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CompanyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCompany получает компанию с расписанием работы
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*Company, error) {
	url := fmt.Sprintf("%s/internal/companies/%d", c.baseURL, companyID)

	var company Company
	if err := c.getJSON(ctx, url, ErrCompanyNotFound, &company); err != nil {
		return nil, err
	}

	return &company, nil
}

// GetService получает услугу из каталога компании
// Используется для определения длительности записи и подсказки цены при завершении.
func (c *Client) GetService(ctx context.Context, companyID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/companies/%d/services/%d", c.baseURL, companyID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, ErrServiceNotFound, &service); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetServicePrice получает цену услуги из прайса компании
// Возвращает nil, если цена для услуги не задана.
func (c *Client) GetServicePrice(ctx context.Context, companyID, serviceID int64) (*float64, error) {
	service, err := c.GetService(ctx, companyID, serviceID)
	if err != nil {
		return nil, err
	}
	return service.Price, nil
}

// ListActiveResources получает все активные ресурсы компании указанного вида
// Реестр постраничный: объединяем все страницы, общее количество может превышать одну страницу.
func (c *Client) ListActiveResources(ctx context.Context, companyID int64, kind string) ([]Resource, error) {
	resources := make([]Resource, 0)

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/internal/companies/%d/resources?kind=%s&active=true&page=%d",
			c.baseURL, companyID, kind, page)

		var pageResp resourcesPage
		if err := c.getJSON(ctx, url, ErrCompanyNotFound, &pageResp); err != nil {
			return nil, err
		}

		resources = append(resources, pageResp.Items...)

		if pageResp.TotalPages == 0 || page >= pageResp.TotalPages {
			break
		}
	}

	c.log.Info("ListActiveResources: fetched %d resources kind=%s for company=%d",
		len(resources), kind, companyID)

	return resources, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, notFoundErr error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
