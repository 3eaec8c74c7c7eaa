package paymentservice

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден в PaymentService
	ErrPaymentNotFound = errors.New("paymentservice client: payment not found")

	// ErrRefundRejected возвращается, когда PaymentService отклонил возврат (сумма, статус платежа)
	ErrRefundRejected = errors.New("paymentservice client: refund rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrUnavailable возвращается, когда сервис не ответил после всех повторов
	ErrUnavailable = errors.New("paymentservice client: service unavailable")
)
