package paymentservice

// RefundRequest запрос на возврат средств по платежу
type RefundRequest struct {
	PaymentID      string
	AmountCents    int64
	Reason         string
	IdempotencyKey string
}

// refundBody тело запроса в PaymentService
type refundBody struct {
	AmountCents int64  `json:"amount_cents"`
	Full        bool   `json:"full"`
	Reason      string `json:"reason"`
}

// RefundResponse модель возврата из PaymentService
type RefundResponse struct {
	RefundID    string `json:"refund_id"`
	PaymentID   string `json:"payment_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

// RefundStatusAlreadyRefunded статус, который клиент подставляет при ответе 409
const RefundStatusAlreadyRefunded = "already_refunded"

// ErrorResponse модель ошибки от PaymentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
