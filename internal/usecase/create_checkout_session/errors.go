package create_checkout_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_checkout_session: invalid input data")

	// ErrUserNotFound возвращается, когда пользователь не зарегистрирован
	ErrUserNotFound = errors.New("create_checkout_session: user not found")

	// ErrProductNotFound возвращается, когда в корзине есть неизвестный товар
	ErrProductNotFound = errors.New("create_checkout_session: product not found")

	// ErrInsufficientStock возвращается, когда товара на складе меньше, чем в корзине
	ErrInsufficientStock = errors.New("create_checkout_session: insufficient stock")

	// ErrPaymentProvider возвращается при ошибке платёжного провайдера
	ErrPaymentProvider = errors.New("create_checkout_session: payment provider error")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_checkout_session: internal error")
)
