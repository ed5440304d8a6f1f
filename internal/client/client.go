package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skalibog/benzboard/internal/config"
	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Пути API бэкенда
const (
	StatusPath      = "/api/status"
	HistoryPath     = "/api/logs"
	PredictionsPath = "/api/predictions"

	DefaultHistoryPageSize = 50
)

// Result единый конверт ответа: либо данные, либо сообщение об ошибке
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
	// Err исходная ошибка, для errors.As / errors.Is
	Err error
}

func succeed[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Error: err.Error(), Err: err}
}

// StatusError ответ бэкенда с кодом вне диапазона 2xx
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// Client клиент для чтения состояния с бэкенда
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

// NewClient создает новый клиент
func NewClient(cfg config.APIConfig) *Client {
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "benzboard",
			MaxConnsPerHost:     4,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// BaseURL адрес бэкенда
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchStatus получает текущий снимок состояния и таблицу лидеров
func (c *Client) FetchStatus(ctx context.Context) Result[models.StatusPayload] {
	res := doRequest[models.StatusPayload](ctx, c, c.baseURL+StatusPath)
	if !res.Success {
		logger.Warn("Ошибка получения состояния", zap.String("error", res.Error))
	}
	return res
}

// FetchHistory получает страницу истории
func (c *Client) FetchHistory(ctx context.Context, page, size int) Result[models.HistoryPage] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultHistoryPageSize
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	res := doRequest[models.HistoryPage](ctx, c, c.baseURL+HistoryPath+"?"+q.Encode())
	if !res.Success {
		logger.Warn("Ошибка получения истории",
			zap.Int("page", page), zap.Int("size", size), zap.String("error", res.Error))
	}
	return res
}

// FetchPredictions получает прогноз на следующий раунд (только реальные стратегии)
func (c *Client) FetchPredictions(ctx context.Context) Result[models.PredictionSet] {
	res := doRequest[models.PredictionSet](ctx, c, c.baseURL+PredictionsPath)
	if !res.Success {
		logger.Warn("Ошибка получения прогноза", zap.String("error", res.Error))
	}
	return res
}

func doRequest[T any](ctx context.Context, c *Client, uri string) Result[T] {
	if err := ctx.Err(); err != nil {
		return failed[T](err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	// Запрос ограничен таймаутом клиента или дедлайном контекста, что раньше
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return failed[T](fmt.Errorf("запрос %s: %w", uri, err))
	}

	status := resp.StatusCode()
	logger.Debug("Ответ бэкенда",
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Duration("took", time.Since(start)))

	if status < 200 || status > 299 {
		return failed[T](&StatusError{Status: status, Body: string(resp.Body())})
	}

	var data T
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return failed[T](fmt.Errorf("ошибка разбора ответа %s: %w", uri, err))
	}
	return succeed(data)
}
