package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
)

const retryBaseDelay = 100 * time.Millisecond

// Client клиент для работы с PaymentService
type Client struct {
	baseURL    string
	token      string
	maxRetries uint64
	baseDelay  time.Duration
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL, token string, timeout time.Duration, maxRetries uint64, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		maxRetries: maxRetries,
		baseDelay:  retryBaseDelay,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// IssueFullRefund возвращает всю сумму платежа
func (c *Client) IssueFullRefund(ctx context.Context, req RefundRequest) (*RefundResponse, error) {
	return c.refund(ctx, req, true)
}

// IssuePartialRefund возвращает часть суммы платежа
func (c *Client) IssuePartialRefund(ctx context.Context, req RefundRequest) (*RefundResponse, error) {
	return c.refund(ctx, req, false)
}

// refund отправляет запрос на возврат с повторами при сетевых ошибках и ответах 5xx
// Повторы безопасны: все попытки несут один и тот же Idempotency-Key
func (c *Client) refund(ctx context.Context, req RefundRequest, full bool) (*RefundResponse, error) {
	if req.PaymentID == "" {
		return nil, fmt.Errorf("%w: empty payment id", ErrInternal)
	}
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: empty idempotency key", ErrInternal)
	}

	body, err := json.Marshal(refundBody{
		AmountCents: req.AmountCents,
		Full:        full,
		Reason:      req.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/internal/payments/%s/refunds", c.baseURL, url.PathEscape(req.PaymentID))

	c.log.Info("Issuing refund: payment=%s, amount=%d, full=%t", req.PaymentID, req.AmountCents, full)

	var result *RefundResponse
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseDelay))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.do(ctx, endpoint, body, req.IdempotencyKey)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		c.log.Error("Refund failed: payment=%s, amount=%d: %v", req.PaymentID, req.AmountCents, err)
		return nil, err
	}

	c.log.Info("Refund issued: payment=%s, refund=%s, status=%s", req.PaymentID, result.RefundID, result.Status)
	return result, nil
}

func (c *Client) do(ctx context.Context, endpoint string, body []byte, idempotencyKey string) (*RefundResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		c.log.Warn("PaymentService request failed, will retry: %v", err)
		return nil, retry.RetryableError(fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusConflict:
		// Возврат по этому ключу уже выполнен
		return &RefundResponse{Status: RefundStatusAlreadyRefunded}, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrPaymentNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", ErrRefundRejected, readError(resp.Body))
	case resp.StatusCode >= http.StatusInternalServerError:
		c.log.Warn("PaymentService responded %d, will retry", resp.StatusCode)
		return nil, retry.RetryableError(fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, readError(resp.Body)))
	default:
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
	}

	// Парсим ответ
	var refund RefundResponse
	if err := json.NewDecoder(resp.Body).Decode(&refund); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &refund, nil
}

// readError достает сообщение об ошибке из тела ответа
func readError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(raw)
}
